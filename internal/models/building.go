package models

import "time"

// Building represents a reservable building. Reference data; rooms belong to
// exactly one building.
type Building struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Address   string    `db:"address" json:"address"`
	NoStairs  bool      `db:"no_stairs" json:"no_stairs"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// BuildingSummary is the list view including the room count.
type BuildingSummary struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Address   string `db:"address" json:"address"`
	NoStairs  bool   `db:"no_stairs" json:"no_stairs"`
	RoomCount int    `db:"room_count" json:"room_count"`
}
