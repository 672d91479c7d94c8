package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/couchconnector/buildingrez-api/internal/models"
)

// BuildingRepository reads building reference data.
type BuildingRepository struct {
	db *sqlx.DB
}

// NewBuildingRepository constructs a building repository.
func NewBuildingRepository(db *sqlx.DB) *BuildingRepository {
	return &BuildingRepository{db: db}
}

// List returns all buildings with their room counts, ordered by name.
func (r *BuildingRepository) List(ctx context.Context) ([]models.BuildingSummary, error) {
	const query = `SELECT b.id, b.name, b.address, b.no_stairs, COUNT(rm.id) AS room_count
FROM buildings b
LEFT JOIN rooms rm ON rm.building_id = b.id
GROUP BY b.id, b.name, b.address, b.no_stairs
ORDER BY b.name ASC`
	var buildings []models.BuildingSummary
	if err := r.db.SelectContext(ctx, &buildings, query); err != nil {
		return nil, fmt.Errorf("list buildings: %w", err)
	}
	return buildings, nil
}

// FindByID fetches a single building.
func (r *BuildingRepository) FindByID(ctx context.Context, id string) (*models.Building, error) {
	const query = `SELECT id, name, address, no_stairs, created_at FROM buildings WHERE id = $1`
	var building models.Building
	if err := r.db.GetContext(ctx, &building, query, id); err != nil {
		return nil, err
	}
	return &building, nil
}

// ListFloors returns the distinct floors of a building in ascending order.
func (r *BuildingRepository) ListFloors(ctx context.Context, buildingID string) ([]int, error) {
	const query = `SELECT DISTINCT floor FROM rooms WHERE building_id = $1 ORDER BY floor ASC`
	var floors []int
	if err := r.db.SelectContext(ctx, &floors, query, buildingID); err != nil {
		return nil, fmt.Errorf("list floors: %w", err)
	}
	return floors, nil
}

// Count returns the number of buildings.
func (r *BuildingRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM buildings"); err != nil {
		return 0, fmt.Errorf("count buildings: %w", err)
	}
	return total, nil
}
