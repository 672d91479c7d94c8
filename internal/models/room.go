package models

import "time"

// Room represents a reservable room within a building. Immutable for the
// lifetime of reservation operations; room management is out of scope.
type Room struct {
	ID           string    `db:"id" json:"id"`
	BuildingID   string    `db:"building_id" json:"building_id"`
	RoomNumber   string    `db:"room_number" json:"room_number"`
	Capacity     int       `db:"capacity" json:"capacity"`
	Floor        int       `db:"floor" json:"floor"`
	ACACompliant bool      `db:"aca_compliant" json:"aca_compliant"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// RoomWithBuilding joins a room with its building display name.
type RoomWithBuilding struct {
	ID           string `db:"id" json:"id"`
	BuildingID   string `db:"building_id" json:"building_id"`
	BuildingName string `db:"building_name" json:"building_name"`
	RoomNumber   string `db:"room_number" json:"room_number"`
	Capacity     int    `db:"capacity" json:"capacity"`
	Floor        int    `db:"floor" json:"floor"`
	ACACompliant bool   `db:"aca_compliant" json:"aca_compliant"`
}

// AvailabilityFilter narrows the room search. An empty BuildingID means no
// building filter. Floor is a pointer so floor 0 stays distinguishable from
// "no floor filter".
type AvailabilityFilter struct {
	Date       time.Time
	StartHour  int
	EndHour    int
	BuildingID string
	Floor      *int
}
