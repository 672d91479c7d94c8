package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/couchconnector/buildingrez-api/internal/models"
	appErrors "github.com/couchconnector/buildingrez-api/pkg/errors"
)

type availabilitySearcher interface {
	ListAvailable(ctx context.Context, filter models.AvailabilityFilter) ([]models.RoomWithBuilding, error)
}

// SearchAvailabilityRequest describes a room availability search. Empty
// BuildingID means no building filter; a nil Floor means no floor filter, so
// floor 0 remains searchable.
type SearchAvailabilityRequest struct {
	Date       string `form:"date" validate:"required"`
	StartHour  int    `form:"startHour"`
	EndHour    int    `form:"endHour"`
	BuildingID string `form:"buildingId"`
	Floor      *int   `form:"floor"`
}

// AvailabilityService answers which rooms are free over a date/time window.
// A room is free iff no approved slot exists for any hour in the window;
// pending requests deliberately do not block the search. Exclusivity against
// pending slots is enforced later, at submission time.
type AvailabilityService struct {
	rooms     availabilitySearcher
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAvailabilityService instantiates AvailabilityService.
func NewAvailabilityService(rooms availabilitySearcher, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *AvailabilityService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{rooms: rooms, cache: cache, validator: validate, logger: logger}
}

// availabilityCachePrefix namespaces cached search results so writes can
// invalidate them wholesale.
const availabilityCachePrefix = "availability:"

// Search returns available rooms ordered by building name, floor and room
// number. Read-only.
func (s *AvailabilityService) Search(ctx context.Context, req SearchAvailabilityRequest) ([]models.RoomWithBuilding, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability query")
	}
	date, err := parseSlotDate(req.Date)
	if err != nil {
		return nil, err
	}
	if err := validateHourWindow(req.StartHour, req.EndHour); err != nil {
		return nil, err
	}

	filter := models.AvailabilityFilter{
		Date:       date,
		StartHour:  req.StartHour,
		EndHour:    req.EndHour,
		BuildingID: req.BuildingID,
		Floor:      req.Floor,
	}

	key := availabilityCacheKey(filter)
	var rooms []models.RoomWithBuilding
	if s.cache.Get(ctx, key, &rooms) {
		return rooms, nil
	}

	rooms, err = s.rooms.ListAvailable(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to search available rooms")
	}

	s.cache.Set(ctx, key, rooms, 0)
	return rooms, nil
}

func availabilityCacheKey(filter models.AvailabilityFilter) string {
	floor := "-"
	if filter.Floor != nil {
		floor = fmt.Sprintf("%d", *filter.Floor)
	}
	building := filter.BuildingID
	if building == "" {
		building = "-"
	}
	return fmt.Sprintf("%s%s:%d:%d:%s:%s",
		availabilityCachePrefix, filter.Date.Format(models.DateFormat), filter.StartHour, filter.EndHour, building, floor)
}
