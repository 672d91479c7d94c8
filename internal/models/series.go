package models

import "time"

// SeriesSummary is the derived view of one recurring series: every slot
// sharing (label, room, weekday, status). It has no stored identity and is
// recomputed from slot rows on each listing; the grouping key here must match
// the deletion key exactly or listed series become undeletable.
type SeriesSummary struct {
	ReservedBy   string     `db:"reserved_by" json:"reserved_by"`
	RoomID       string     `db:"room_id" json:"room_id"`
	RoomNumber   string     `db:"room_number" json:"room_number"`
	BuildingName string     `db:"building_name" json:"building_name"`
	Weekday      int        `db:"weekday" json:"weekday"`
	Status       SlotStatus `db:"status" json:"status"`
	FirstDate    time.Time  `db:"first_date" json:"first_date"`
	LastDate     time.Time  `db:"last_date" json:"last_date"`
	SlotCount    int        `db:"slot_count" json:"slot_count"`
	StartHour    int        `db:"start_hour" json:"start_hour"`
	EndHour      int        `db:"end_hour" json:"end_hour"`
}

// SeriesKey identifies a series for deletion. Weekday uses Go's time.Weekday
// numbering (Sunday=0), the same numbering Postgres EXTRACT(DOW ...) yields.
type SeriesKey struct {
	ReservedBy string
	RoomID     string
	Weekday    time.Weekday
	FromDate   time.Time
	Status     SlotStatus // empty = any status
}
