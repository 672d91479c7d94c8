package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/couchconnector/buildingrez-api/internal/models"
	appErrors "github.com/couchconnector/buildingrez-api/pkg/errors"
)

type buildingRepository interface {
	List(ctx context.Context) ([]models.BuildingSummary, error)
	FindByID(ctx context.Context, id string) (*models.Building, error)
	ListFloors(ctx context.Context, buildingID string) ([]int, error)
}

type roomLister interface {
	List(ctx context.Context, buildingID string) ([]models.RoomWithBuilding, error)
}

// BuildingService serves the building and room directory that backs the
// room-picker flows.
type BuildingService struct {
	buildings buildingRepository
	rooms     roomLister
	logger    *zap.Logger
}

// NewBuildingService instantiates BuildingService.
func NewBuildingService(buildings buildingRepository, rooms roomLister, logger *zap.Logger) *BuildingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BuildingService{buildings: buildings, rooms: rooms, logger: logger}
}

// List returns every building with its room count.
func (s *BuildingService) List(ctx context.Context) ([]models.BuildingSummary, error) {
	buildings, err := s.buildings.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list buildings")
	}
	return buildings, nil
}

// Floors returns the distinct floors of one building, for narrowing an
// availability search.
func (s *BuildingService) Floors(ctx context.Context, buildingID string) ([]int, error) {
	if _, err := s.buildings.FindByID(ctx, buildingID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "building not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load building")
	}
	floors, err := s.buildings.ListFloors(ctx, buildingID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list floors")
	}
	return floors, nil
}

// Rooms lists rooms, optionally scoped to one building.
func (s *BuildingService) Rooms(ctx context.Context, buildingID string) ([]models.RoomWithBuilding, error) {
	rooms, err := s.rooms.List(ctx, buildingID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rooms")
	}
	return rooms, nil
}
