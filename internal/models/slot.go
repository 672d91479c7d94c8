package models

import (
	"strings"
	"time"
)

// SlotStatus is the lifecycle state of a reservation slot.
type SlotStatus string

const (
	StatusPending  SlotStatus = "pending"
	StatusApproved SlotStatus = "approved"
	StatusRejected SlotStatus = "rejected"
)

// Reservable hours: a slot starts at SlotHour and occupies one hour, so the
// last bookable start is 19 and the exclusive end bound of a range is 20.
const (
	MinHour    = 7
	MaxHour    = 19
	MaxEndHour = 20
)

// Labels with these prefixes mark slots that belong to a recurring series.
var SeriesPrefixes = []string{"Recurring:", "Weekly:"}

// DateFormat is the wire format for slot dates.
const DateFormat = "2006-01-02"

// Slot is one room-hour-date unit of bookable time. Only Status ever changes
// after creation; cancellation deletes the row outright.
type Slot struct {
	ID         string     `db:"id" json:"id"`
	RoomID     string     `db:"room_id" json:"room_id"`
	ReservedBy string     `db:"reserved_by" json:"reserved_by"`
	SlotDate   time.Time  `db:"slot_date" json:"slot_date"`
	SlotHour   int        `db:"slot_hour" json:"slot_hour"`
	Status     SlotStatus `db:"status" json:"status"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

// IsValid reports whether the status is one of the known states.
func (s SlotStatus) IsValid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// Blocks reports whether a slot in this status holds its hour against new
// submissions.
func (s SlotStatus) Blocks() bool {
	return s == StatusPending || s == StatusApproved
}

// IsSeriesLabel reports whether a requester label follows the recurring
// series naming convention.
func IsSeriesLabel(label string) bool {
	for _, prefix := range SeriesPrefixes {
		if strings.HasPrefix(label, prefix) {
			return true
		}
	}
	return false
}

// SlotDetail is a slot joined with its room and building display data, used
// by the admin surfaces.
type SlotDetail struct {
	ID           string     `db:"id" json:"id"`
	RoomID       string     `db:"room_id" json:"room_id"`
	ReservedBy   string     `db:"reserved_by" json:"reserved_by"`
	SlotDate     time.Time  `db:"slot_date" json:"slot_date"`
	SlotHour     int        `db:"slot_hour" json:"slot_hour"`
	Status       SlotStatus `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	RoomNumber   string     `db:"room_number" json:"room_number"`
	Capacity     int        `db:"capacity" json:"capacity"`
	Floor        int        `db:"floor" json:"floor"`
	BuildingName string     `db:"building_name" json:"building_name"`
}

// SlotConflict identifies one (date, hour) pair that could not be inserted
// because a non-rejected slot already holds it.
type SlotConflict struct {
	Date time.Time `json:"date"`
	Hour int       `json:"hour"`
}

// DashboardStats summarises the admin dashboard counters.
type DashboardStats struct {
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Buildings int `json:"buildings"`
	Rooms     int `json:"rooms"`
}

// RoomScheduleDay groups a room's slots for one calendar day.
type RoomScheduleDay struct {
	Date  time.Time    `json:"date"`
	Slots []SlotDetail `json:"slots"`
}
