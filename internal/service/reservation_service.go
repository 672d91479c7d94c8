package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/couchconnector/buildingrez-api/internal/models"
	"github.com/couchconnector/buildingrez-api/internal/repository"
	appErrors "github.com/couchconnector/buildingrez-api/pkg/errors"
)

type slotRepository interface {
	InsertRange(ctx context.Context, roomID, reservedBy string, date time.Time, startHour, endHour int) ([]string, error)
	FindByID(ctx context.Context, id string) (*models.Slot, error)
	ListPending(ctx context.Context) ([]models.SlotDetail, error)
	ListDetailed(ctx context.Context, status models.SlotStatus) ([]models.SlotDetail, error)
	ListForRoom(ctx context.Context, roomID string, from, to time.Time) ([]models.SlotDetail, error)
	UpdateStatus(ctx context.Context, id string, from []models.SlotStatus, to models.SlotStatus) (bool, error)
	UpdateStatusBatch(ctx context.Context, ids []string, from []models.SlotStatus, to models.SlotStatus) (int64, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type roomFinder interface {
	FindByID(ctx context.Context, id string) (*models.RoomWithBuilding, error)
}

// SubmitReservationRequest describes a client reservation submission.
type SubmitReservationRequest struct {
	RoomID     string `json:"room_id" validate:"required"`
	ReservedBy string `json:"reserved_by" validate:"required"`
	Date       string `json:"date" validate:"required"`
	StartHour  int    `json:"start_hour"`
	EndHour    int    `json:"end_hour"`
}

// SubmitReservationResult reports the created slots for confirmation
// messaging.
type SubmitReservationResult struct {
	SlotIDs       []string `json:"slot_ids"`
	HoursReserved int      `json:"hours_reserved"`
}

// BlockActionRequest identifies the slots of one block for batch
// approval/rejection.
type BlockActionRequest struct {
	SlotIDs []string `json:"slot_ids" validate:"required,min=1"`
}

// RoomSchedule is the three-week weekday schedule of one room.
type RoomSchedule struct {
	Room *models.RoomWithBuilding `json:"room"`
	Days []models.RoomScheduleDay `json:"days"`
}

// ReservationService implements reservation submission and the admin slot
// lifecycle: approve, reject, cancel, individually or per block.
type ReservationService struct {
	slots     slotRepository
	rooms     roomFinder
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewReservationService instantiates ReservationService.
func NewReservationService(slots slotRepository, rooms roomFinder, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ReservationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReservationService{
		slots:     slots,
		rooms:     rooms,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// Submit validates and inserts a multi-hour reservation as one atomic unit:
// either every hour in [start, end) is created pending, or nothing is and the
// first colliding hour is reported. Weekend dates are rejected outright.
func (s *ReservationService) Submit(ctx context.Context, req SubmitReservationRequest) (*SubmitReservationResult, error) {
	if err := s.validator.Struct(req); err != nil {
		s.metrics.RecordSubmission("invalid")
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reservation payload")
	}
	date, err := parseSlotDate(req.Date)
	if err != nil {
		s.metrics.RecordSubmission("invalid")
		return nil, err
	}
	if !isWeekday(date) {
		s.metrics.RecordSubmission("invalid")
		return nil, appErrors.Clone(appErrors.ErrValidation, "reservations are only allowed on weekdays")
	}
	if err := validateHourWindow(req.StartHour, req.EndHour); err != nil {
		s.metrics.RecordSubmission("invalid")
		return nil, err
	}

	if _, err := s.rooms.FindByID(ctx, req.RoomID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}

	ids, err := s.slots.InsertRange(ctx, req.RoomID, req.ReservedBy, date, req.StartHour, req.EndHour)
	if err != nil {
		var conflict *repository.HourConflictError
		if errors.As(err, &conflict) {
			s.metrics.RecordSubmission("conflict")
			return nil, appErrors.WithDetails(
				appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("time slot %d:00 is already reserved or pending", conflict.Hour)),
				map[string]interface{}{"hour": conflict.Hour, "date": conflict.Date.Format(models.DateFormat)},
			)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create reservation")
	}

	s.metrics.RecordSubmission("accepted")
	s.cache.Invalidate(ctx, availabilityCachePrefix+"*")
	s.logger.Info("reservation submitted",
		zap.String("room_id", req.RoomID),
		zap.String("date", req.Date),
		zap.Int("hours", len(ids)))
	return &SubmitReservationResult{SlotIDs: ids, HoursReserved: len(ids)}, nil
}

// Approve transitions a pending slot to approved.
func (s *ReservationService) Approve(ctx context.Context, id string) error {
	return s.transition(ctx, id, []models.SlotStatus{models.StatusPending}, models.StatusApproved)
}

// Reject transitions a pending or approved slot to rejected. Rejecting an
// approved slot is the admin override path.
func (s *ReservationService) Reject(ctx context.Context, id string) error {
	return s.transition(ctx, id, []models.SlotStatus{models.StatusPending, models.StatusApproved}, models.StatusRejected)
}

func (s *ReservationService) transition(ctx context.Context, id string, from []models.SlotStatus, to models.SlotStatus) error {
	slot, err := s.slots.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "reservation not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load reservation")
	}

	ok, err := s.slots.UpdateStatus(ctx, id, from, to)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update reservation")
	}
	if !ok {
		return appErrors.Clone(appErrors.ErrConflict,
			fmt.Sprintf("reservation is %s and cannot become %s", slot.Status, to))
	}

	s.cache.Invalidate(ctx, availabilityCachePrefix+"*")
	return nil
}

// ApproveBlock approves every pending slot in the block and returns the
// number transitioned.
func (s *ReservationService) ApproveBlock(ctx context.Context, req BlockActionRequest) (int64, error) {
	return s.transitionBlock(ctx, req, []models.SlotStatus{models.StatusPending}, models.StatusApproved)
}

// RejectBlock rejects every pending or approved slot in the block and
// returns the number transitioned.
func (s *ReservationService) RejectBlock(ctx context.Context, req BlockActionRequest) (int64, error) {
	return s.transitionBlock(ctx, req, []models.SlotStatus{models.StatusPending, models.StatusApproved}, models.StatusRejected)
}

func (s *ReservationService) transitionBlock(ctx context.Context, req BlockActionRequest, from []models.SlotStatus, to models.SlotStatus) (int64, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "no reservations specified")
	}
	count, err := s.slots.UpdateStatusBatch(ctx, req.SlotIDs, from, to)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update reservation block")
	}
	if count > 0 {
		s.cache.Invalidate(ctx, availabilityCachePrefix+"*")
	}
	return count, nil
}

// Cancel hard-deletes a slot, freeing its hour immediately. Allowed from any
// status; there is no tombstone.
func (s *ReservationService) Cancel(ctx context.Context, id string) error {
	ok, err := s.slots.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to cancel reservation")
	}
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "reservation not found")
	}
	s.cache.Invalidate(ctx, availabilityCachePrefix+"*")
	return nil
}

// PendingBlocks returns all pending slots grouped into contiguous blocks for
// the admin dashboard.
func (s *ReservationService) PendingBlocks(ctx context.Context) ([][]models.SlotDetail, error) {
	pending, err := s.slots.ListPending(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list pending reservations")
	}
	return GroupSlotBlocks(pending), nil
}

// List returns slots with display data, optionally filtered by status.
func (s *ReservationService) List(ctx context.Context, status string) ([]models.SlotDetail, error) {
	st := models.SlotStatus(status)
	if status != "" && !st.IsValid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown status %q", status))
	}
	slots, err := s.slots.ListDetailed(ctx, st)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reservations")
	}
	return slots, nil
}

// scheduleWeeks is how far ahead the room schedule view looks.
const scheduleWeeks = 3

// RoomSchedule returns the room's non-rejected slots for the next three
// weeks, one entry per weekday, empty days included.
func (s *ReservationService) RoomSchedule(ctx context.Context, roomID string) (*RoomSchedule, error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}

	from := dateOnly(s.now())
	to := from.AddDate(0, 0, scheduleWeeks*7)
	slots, err := s.slots.ListForRoom(ctx, roomID, from, to)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room schedule")
	}

	byDate := make(map[string][]models.SlotDetail, len(slots))
	for _, slot := range slots {
		key := slot.SlotDate.Format(models.DateFormat)
		byDate[key] = append(byDate[key], slot)
	}

	schedule := &RoomSchedule{Room: room}
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if !isWeekday(day) {
			continue
		}
		schedule.Days = append(schedule.Days, models.RoomScheduleDay{
			Date:  day,
			Slots: byDate[day.Format(models.DateFormat)],
		})
	}
	return schedule, nil
}
