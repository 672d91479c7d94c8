package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/couchconnector/buildingrez-api/internal/models"
)

// SlotRepository persists reservation slots. The slots table carries a
// partial unique index on (room_id, slot_date, slot_hour) restricted to
// non-rejected rows; every insert in this repository relies on it as the
// authoritative overlap guard.
type SlotRepository struct {
	db *sqlx.DB
}

// NewSlotRepository constructs a slot repository.
func NewSlotRepository(db *sqlx.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

// HourConflictError reports the first hour of a submission that is already
// held by a non-rejected slot.
type HourConflictError struct {
	Date time.Time
	Hour int
}

func (e *HourConflictError) Error() string {
	return fmt.Sprintf("slot %s %02d:00 already reserved or pending", e.Date.Format(models.DateFormat), e.Hour)
}

// Unwrap lets callers test with errors.Is(err, ErrSlotTaken).
func (e *HourConflictError) Unwrap() error {
	return ErrSlotTaken
}

const slotDetailColumns = `s.id, s.room_id, s.reserved_by, s.slot_date, s.slot_hour, s.status, s.created_at,
r.room_number, r.capacity, r.floor, b.name AS building_name`

const slotInsert = `INSERT INTO slots (id, room_id, reserved_by, slot_date, slot_hour, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

// InsertRange inserts one pending slot per hour in [startHour, endHour) as a
// single transaction. If any hour in the window is already held by a pending
// or approved slot the whole submission fails with *HourConflictError and no
// rows are written. A concurrent writer that slips past the scan loses on the
// unique index and is reported the same way.
func (r *SlotRepository) InsertRange(ctx context.Context, roomID, reservedBy string, date time.Time, startHour, endHour int) ([]string, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin submission: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const conflictScan = `SELECT slot_hour FROM slots
WHERE room_id = $1 AND slot_date = $2 AND slot_hour >= $3 AND slot_hour < $4
  AND status IN ('pending', 'approved')
ORDER BY slot_hour ASC
LIMIT 1`
	var takenHour int
	err = tx.GetContext(ctx, &takenHour, conflictScan, roomID, date, startHour, endHour)
	switch {
	case err == nil:
		return nil, &HourConflictError{Date: date, Hour: takenHour}
	case errors.Is(err, sql.ErrNoRows):
		// window is free, proceed
	default:
		return nil, fmt.Errorf("scan submission conflicts: %w", err)
	}

	now := time.Now().UTC()
	ids := make([]string, 0, endHour-startHour)
	for hour := startHour; hour < endHour; hour++ {
		id := uuid.NewString()
		if _, err := tx.ExecContext(ctx, slotInsert, id, roomID, reservedBy, date, hour, models.StatusPending, now); err != nil {
			if isUniqueViolation(err) {
				return nil, &HourConflictError{Date: date, Hour: hour}
			}
			return nil, fmt.Errorf("insert slot: %w", err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit submission: %w", err)
	}
	return ids, nil
}

// InsertOne inserts a single slot row. A collision with an existing
// non-rejected slot returns ErrSlotTaken; the caller decides whether that
// aborts anything. Used by series expansion, where each slot is independent.
func (r *SlotRepository) InsertOne(ctx context.Context, slot *models.Slot) error {
	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	if slot.CreatedAt.IsZero() {
		slot.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, slotInsert,
		slot.ID, slot.RoomID, slot.ReservedBy, slot.SlotDate, slot.SlotHour, slot.Status, slot.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("insert slot: %w", err)
	}
	return nil
}

// FindByID fetches a single slot row.
func (r *SlotRepository) FindByID(ctx context.Context, id string) (*models.Slot, error) {
	const query = `SELECT id, room_id, reserved_by, slot_date, slot_hour, status, created_at
FROM slots WHERE id = $1`
	var slot models.Slot
	if err := r.db.GetContext(ctx, &slot, query, id); err != nil {
		return nil, err
	}
	return &slot, nil
}

// ListPending returns pending slots sorted by (reserved_by, slot_date,
// slot_hour), the order block grouping expects.
func (r *SlotRepository) ListPending(ctx context.Context) ([]models.SlotDetail, error) {
	query := fmt.Sprintf(`SELECT %s
FROM slots s
JOIN rooms r ON r.id = s.room_id
JOIN buildings b ON b.id = r.building_id
WHERE s.status = 'pending'
ORDER BY s.reserved_by ASC, s.slot_date ASC, s.slot_hour ASC`, slotDetailColumns)
	var slots []models.SlotDetail
	if err := r.db.SelectContext(ctx, &slots, query); err != nil {
		return nil, fmt.Errorf("list pending slots: %w", err)
	}
	return slots, nil
}

// ListDetailed returns slots with display data, newest first, optionally
// filtered by status (empty = all).
func (r *SlotRepository) ListDetailed(ctx context.Context, status models.SlotStatus) ([]models.SlotDetail, error) {
	query := fmt.Sprintf(`SELECT %s
FROM slots s
JOIN rooms r ON r.id = s.room_id
JOIN buildings b ON b.id = r.building_id
WHERE ($1 = '' OR s.status = $1)
ORDER BY s.created_at DESC, s.slot_date ASC, s.slot_hour ASC`, slotDetailColumns)
	var slots []models.SlotDetail
	if err := r.db.SelectContext(ctx, &slots, query, string(status)); err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return slots, nil
}

// ListForRoom returns a room's non-rejected slots in a date range, in
// schedule order.
func (r *SlotRepository) ListForRoom(ctx context.Context, roomID string, from, to time.Time) ([]models.SlotDetail, error) {
	query := fmt.Sprintf(`SELECT %s
FROM slots s
JOIN rooms r ON r.id = s.room_id
JOIN buildings b ON b.id = r.building_id
WHERE s.room_id = $1 AND s.slot_date >= $2 AND s.slot_date <= $3 AND s.status <> 'rejected'
ORDER BY s.slot_date ASC, s.slot_hour ASC`, slotDetailColumns)
	var slots []models.SlotDetail
	if err := r.db.SelectContext(ctx, &slots, query, roomID, from, to); err != nil {
		return nil, fmt.Errorf("list room slots: %w", err)
	}
	return slots, nil
}

// UpdateStatus transitions one slot to the target status, guarded by the set
// of states the transition is legal from. Returns false when no row matched,
// i.e. the slot does not exist or is not in an allowed state.
func (r *SlotRepository) UpdateStatus(ctx context.Context, id string, from []models.SlotStatus, to models.SlotStatus) (bool, error) {
	const query = `UPDATE slots SET status = $1 WHERE id = $2 AND status = ANY($3)`
	res, err := r.db.ExecContext(ctx, query, to, id, pq.Array(statusStrings(from)))
	if err != nil {
		return false, fmt.Errorf("update slot status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update slot status: %w", err)
	}
	return affected > 0, nil
}

// UpdateStatusBatch transitions every listed slot that is in an allowed state
// and reports how many rows changed.
func (r *SlotRepository) UpdateStatusBatch(ctx context.Context, ids []string, from []models.SlotStatus, to models.SlotStatus) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	const query = `UPDATE slots SET status = $1 WHERE id = ANY($2) AND status = ANY($3)`
	res, err := r.db.ExecContext(ctx, query, to, pq.Array(ids), pq.Array(statusStrings(from)))
	if err != nil {
		return 0, fmt.Errorf("update slot statuses: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update slot statuses: %w", err)
	}
	return affected, nil
}

// Delete removes a slot outright, freeing its hour. Returns false when the
// slot did not exist.
func (r *SlotRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM slots WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete slot: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete slot: %w", err)
	}
	return affected > 0, nil
}

// ListSeries reconstructs recurring series from future-dated slots whose
// label carries a series prefix, bucketed by (label, room, weekday, status).
// EXTRACT(DOW ...) numbers Sunday as 0, matching time.Weekday.
func (r *SlotRepository) ListSeries(ctx context.Context, from time.Time) ([]models.SeriesSummary, error) {
	const query = `SELECT s.reserved_by, s.room_id, r.room_number, b.name AS building_name,
EXTRACT(DOW FROM s.slot_date)::int AS weekday, s.status,
MIN(s.slot_date) AS first_date, MAX(s.slot_date) AS last_date,
COUNT(*) AS slot_count, MIN(s.slot_hour) AS start_hour, MAX(s.slot_hour) AS end_hour
FROM slots s
JOIN rooms r ON r.id = s.room_id
JOIN buildings b ON b.id = r.building_id
WHERE s.slot_date >= $1
  AND (s.reserved_by LIKE 'Recurring:%' OR s.reserved_by LIKE 'Weekly:%')
GROUP BY s.reserved_by, s.room_id, r.room_number, b.name, weekday, s.status
ORDER BY s.reserved_by ASC, weekday ASC, r.room_number ASC`
	var series []models.SeriesSummary
	if err := r.db.SelectContext(ctx, &series, query, from); err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}
	return series, nil
}

// DeleteSeries removes every slot matching the series key from the given
// date onward. Zero matches is a successful no-op.
func (r *SlotRepository) DeleteSeries(ctx context.Context, key models.SeriesKey) (int64, error) {
	const query = `DELETE FROM slots
WHERE reserved_by = $1
  AND room_id = $2
  AND EXTRACT(DOW FROM slot_date)::int = $3
  AND slot_date >= $4
  AND ($5 = '' OR status = $5)`
	res, err := r.db.ExecContext(ctx, query,
		key.ReservedBy, key.RoomID, int(key.Weekday), key.FromDate, string(key.Status))
	if err != nil {
		return 0, fmt.Errorf("delete series: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete series: %w", err)
	}
	return affected, nil
}

// CountByStatus returns how many slots are in the given status.
func (r *SlotRepository) CountByStatus(ctx context.Context, status models.SlotStatus) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM slots WHERE status = $1", status); err != nil {
		return 0, fmt.Errorf("count slots: %w", err)
	}
	return total, nil
}

func statusStrings(statuses []models.SlotStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
