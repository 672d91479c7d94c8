package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/couchconnector/buildingrez-api/internal/models"
)

// RoomRepository reads room reference data and answers availability searches.
type RoomRepository struct {
	db *sqlx.DB
}

// NewRoomRepository constructs a room repository.
func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

const roomColumns = `r.id, r.building_id, b.name AS building_name, r.room_number, r.capacity, r.floor, r.aca_compliant`

// FindByID fetches a room joined with its building name.
func (r *RoomRepository) FindByID(ctx context.Context, id string) (*models.RoomWithBuilding, error) {
	query := fmt.Sprintf(`SELECT %s
FROM rooms r
JOIN buildings b ON b.id = r.building_id
WHERE r.id = $1`, roomColumns)
	var room models.RoomWithBuilding
	if err := r.db.GetContext(ctx, &room, query, id); err != nil {
		return nil, err
	}
	return &room, nil
}

// List returns rooms, optionally restricted to one building, in display order.
func (r *RoomRepository) List(ctx context.Context, buildingID string) ([]models.RoomWithBuilding, error) {
	query := fmt.Sprintf(`SELECT %s
FROM rooms r
JOIN buildings b ON b.id = r.building_id
WHERE ($1 = '' OR r.building_id = $1)
ORDER BY b.name ASC, r.floor ASC, r.room_number ASC`, roomColumns)
	var rooms []models.RoomWithBuilding
	if err := r.db.SelectContext(ctx, &rooms, query, buildingID); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

// ListAvailable returns rooms with no approved slot anywhere in the requested
// hour window. Pending slots do not exclude a room here: the search is
// optimistic, exclusivity is enforced at submission time.
func (r *RoomRepository) ListAvailable(ctx context.Context, filter models.AvailabilityFilter) ([]models.RoomWithBuilding, error) {
	query := fmt.Sprintf(`SELECT %s
FROM rooms r
JOIN buildings b ON b.id = r.building_id
WHERE ($1 = '' OR r.building_id = $1)
  AND ($2::int IS NULL OR r.floor = $2)
  AND NOT EXISTS (
      SELECT 1 FROM slots s
      WHERE s.room_id = r.id
        AND s.slot_date = $3
        AND s.slot_hour >= $4
        AND s.slot_hour < $5
        AND s.status = 'approved'
  )
ORDER BY b.name ASC, r.floor ASC, r.room_number ASC`, roomColumns)
	var rooms []models.RoomWithBuilding
	err := r.db.SelectContext(ctx, &rooms, query,
		filter.BuildingID, filter.Floor, filter.Date, filter.StartHour, filter.EndHour)
	if err != nil {
		return nil, fmt.Errorf("search available rooms: %w", err)
	}
	return rooms, nil
}

// Count returns the number of rooms.
func (r *RoomRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM rooms"); err != nil {
		return 0, fmt.Errorf("count rooms: %w", err)
	}
	return total, nil
}
