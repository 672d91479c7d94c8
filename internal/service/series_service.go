package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/couchconnector/buildingrez-api/internal/models"
	"github.com/couchconnector/buildingrez-api/internal/repository"
	"github.com/couchconnector/buildingrez-api/pkg/config"
	appErrors "github.com/couchconnector/buildingrez-api/pkg/errors"
)

type seriesSlotRepository interface {
	InsertOne(ctx context.Context, slot *models.Slot) error
	ListSeries(ctx context.Context, from time.Time) ([]models.SeriesSummary, error)
	DeleteSeries(ctx context.Context, key models.SeriesKey) (int64, error)
}

// CreateSeriesRequest describes a recurring weekly series. Weekday uses Go's
// time.Weekday numbering (Sunday=0). StartDate is optional; when empty the
// series anchors from today.
type CreateSeriesRequest struct {
	ReservedBy string `json:"reserved_by" validate:"required"`
	BuildingID string `json:"building_id"`
	RoomID     string `json:"room_id" validate:"required"`
	Weekday    int    `json:"weekday"`
	StartHour  int    `json:"start_hour"`
	EndHour    int    `json:"end_hour"`
	Weeks      int    `json:"weeks"`
	StartDate  string `json:"start_date"`
	Status     string `json:"status"`
}

// CreateSeriesResult reports exact insertion/conflict accounting plus a
// capped, display-ready conflict list.
type CreateSeriesResult struct {
	InsertedCount int                   `json:"inserted_count"`
	ConflictCount int                   `json:"conflict_count"`
	Conflicts     []models.SlotConflict `json:"conflicts,omitempty"`
	MoreConflicts int                   `json:"more_conflicts,omitempty"`
	FirstDate     time.Time             `json:"first_date"`
}

// DeleteSeriesRequest identifies a series by its derived grouping key.
type DeleteSeriesRequest struct {
	ReservedBy string `json:"reserved_by" validate:"required"`
	RoomID     string `json:"room_id" validate:"required"`
	Weekday    int    `json:"weekday"`
	FromDate   string `json:"from_date"`
	Status     string `json:"status"`
}

// SeriesService expands recurring weekly series into individual slots and
// reconstructs them from slot rows for listing and bulk deletion. Series are
// never stored as objects: both sides re-derive membership from the same
// (label, room, weekday, status) key.
type SeriesService struct {
	slots     seriesSlotRepository
	rooms     roomFinder
	cache     *CacheService
	metrics   *MetricsService
	cfg       config.SeriesConfig
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewSeriesService instantiates SeriesService.
func NewSeriesService(slots seriesSlotRepository, rooms roomFinder, cache *CacheService, metrics *MetricsService, cfg config.SeriesConfig, validate *validator.Validate, logger *zap.Logger) *SeriesService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxWeeks <= 0 {
		cfg.MaxWeeks = 52
	}
	if cfg.DefaultWeeks <= 0 {
		cfg.DefaultWeeks = 8
	}
	if cfg.ConflictDisplay <= 0 {
		cfg.ConflictDisplay = 5
	}
	return &SeriesService{
		slots:     slots,
		rooms:     rooms,
		cache:     cache,
		metrics:   metrics,
		cfg:       cfg,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// Create expands the series and inserts its slots one by one. Failure
// isolation is per slot: a collision on one (date, hour) is recorded and
// skipped while every other insertion proceeds. This deliberately relaxes the
// all-or-nothing semantics of single submissions: for an administrative bulk
// operation, partial success beats total failure.
func (s *SeriesService) Create(ctx context.Context, req CreateSeriesRequest) (*CreateSeriesResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid series payload")
	}
	if strings.TrimSpace(req.ReservedBy) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "series label is required")
	}

	status := models.SlotStatus(req.Status)
	if status == "" {
		status = models.StatusApproved
	}
	if status != models.StatusPending && status != models.StatusApproved {
		return nil, appErrors.Clone(appErrors.ErrValidation, "status must be pending or approved")
	}

	if req.Weekday < 0 || req.Weekday > 6 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "weekday must be between 0 (Sunday) and 6 (Saturday)")
	}
	if req.StartHour < models.MinHour || req.StartHour > models.MaxHour {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start hour must be between 7 AM and 7 PM")
	}
	if req.EndHour <= req.StartHour || req.EndHour > models.MaxEndHour {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end hour must be after start hour and no later than 8 PM")
	}

	// Out-of-range week counts are clamped, not rejected: a safety bound on
	// loop length rather than a user-facing rule.
	weeks := req.Weeks
	if weeks == 0 {
		weeks = s.cfg.DefaultWeeks
	}
	if weeks < 1 {
		weeks = 1
	}
	if weeks > s.cfg.MaxWeeks {
		weeks = s.cfg.MaxWeeks
	}

	room, err := s.rooms.FindByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "selected room could not be found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}
	if req.BuildingID != "" && room.BuildingID != req.BuildingID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "selected room does not belong to the chosen building")
	}

	start := dateOnly(s.now())
	if req.StartDate != "" {
		if start, err = parseSlotDate(req.StartDate); err != nil {
			return nil, err
		}
	}
	anchor := alignToWeekday(start, time.Weekday(req.Weekday))

	result := &CreateSeriesResult{FirstDate: anchor}
	var conflicts []models.SlotConflict

	for week := 0; week < weeks; week++ {
		slotDate := anchor.AddDate(0, 0, 7*week)
		for hour := req.StartHour; hour < req.EndHour; hour++ {
			slot := models.Slot{
				RoomID:     req.RoomID,
				ReservedBy: req.ReservedBy,
				SlotDate:   slotDate,
				SlotHour:   hour,
				Status:     status,
			}
			err := s.slots.InsertOne(ctx, &slot)
			switch {
			case err == nil:
				result.InsertedCount++
			case errors.Is(err, repository.ErrSlotTaken):
				conflicts = append(conflicts, models.SlotConflict{Date: slotDate, Hour: hour})
			default:
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create series slot")
			}
		}
	}

	result.ConflictCount = len(conflicts)
	result.Conflicts, result.MoreConflicts = summariseConflicts(conflicts, s.cfg.ConflictDisplay)

	s.metrics.RecordSeriesSlots("inserted", result.InsertedCount)
	s.metrics.RecordSeriesSlots("conflict", result.ConflictCount)
	if result.InsertedCount > 0 {
		s.cache.Invalidate(ctx, availabilityCachePrefix+"*")
	}
	s.logger.Info("series created",
		zap.String("reserved_by", req.ReservedBy),
		zap.String("room_id", req.RoomID),
		zap.Int("inserted", result.InsertedCount),
		zap.Int("conflicts", result.ConflictCount))
	return result, nil
}

// List reconstructs all future-dated recurring series.
func (s *SeriesService) List(ctx context.Context) ([]models.SeriesSummary, error) {
	series, err := s.slots.ListSeries(ctx, dateOnly(s.now()))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list series")
	}
	return series, nil
}

// Delete removes every slot of the identified series from the given date
// onward and returns the count removed. Matching nothing is a successful
// no-op.
func (s *SeriesService) Delete(ctx context.Context, req DeleteSeriesRequest) (int64, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "missing series information")
	}
	if req.Weekday < 0 || req.Weekday > 6 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "weekday must be between 0 (Sunday) and 6 (Saturday)")
	}
	status := models.SlotStatus(req.Status)
	if req.Status != "" && !status.IsValid() {
		return 0, appErrors.Clone(appErrors.ErrValidation, "unknown status filter")
	}

	fromDate := dateOnly(s.now())
	if req.FromDate != "" {
		var err error
		if fromDate, err = parseSlotDate(req.FromDate); err != nil {
			return 0, err
		}
	}

	key := models.SeriesKey{
		ReservedBy: req.ReservedBy,
		RoomID:     req.RoomID,
		Weekday:    time.Weekday(req.Weekday),
		FromDate:   fromDate,
		Status:     status,
	}
	count, err := s.slots.DeleteSeries(ctx, key)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete series")
	}
	if count > 0 {
		s.cache.Invalidate(ctx, availabilityCachePrefix+"*")
	}
	return count, nil
}

// summariseConflicts deduplicates and sorts conflicts by date then hour, and
// caps the display list at limit, reporting how many were left out. The
// caller's exact counts are unaffected by the cap.
func summariseConflicts(conflicts []models.SlotConflict, limit int) ([]models.SlotConflict, int) {
	if len(conflicts) == 0 {
		return nil, 0
	}

	seen := make(map[string]struct{}, len(conflicts))
	unique := make([]models.SlotConflict, 0, len(conflicts))
	for _, c := range conflicts {
		key := fmt.Sprintf("%s:%d", c.Date.Format(models.DateFormat), c.Hour)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, c)
	}

	sort.Slice(unique, func(i, j int) bool {
		if !unique[i].Date.Equal(unique[j].Date) {
			return unique[i].Date.Before(unique[j].Date)
		}
		return unique[i].Hour < unique[j].Hour
	})

	if len(unique) <= limit {
		return unique, 0
	}
	return unique[:limit], len(unique) - limit
}
