package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/couchconnector/buildingrez-api/internal/models"
	appErrors "github.com/couchconnector/buildingrez-api/pkg/errors"
)

type statusCounter interface {
	CountByStatus(ctx context.Context, status models.SlotStatus) (int, error)
}

type entityCounter interface {
	Count(ctx context.Context) (int, error)
}

// DashboardService aggregates the headline numbers for the admin landing
// view.
type DashboardService struct {
	slots     statusCounter
	buildings entityCounter
	rooms     entityCounter
	logger    *zap.Logger
}

// NewDashboardService instantiates DashboardService.
func NewDashboardService(slots statusCounter, buildings, rooms entityCounter, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{slots: slots, buildings: buildings, rooms: rooms, logger: logger}
}

// Stats collects pending/approved reservation counts alongside building and
// room totals.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}
	var err error

	if stats.Pending, err = s.slots.CountByStatus(ctx, models.StatusPending); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count pending reservations")
	}
	if stats.Approved, err = s.slots.CountByStatus(ctx, models.StatusApproved); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count approved reservations")
	}
	if stats.Buildings, err = s.buildings.Count(ctx); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count buildings")
	}
	if stats.Rooms, err = s.rooms.Count(ctx); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count rooms")
	}
	return stats, nil
}
