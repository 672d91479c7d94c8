// Package repository implements sqlx-backed persistence for buildings, rooms
// and reservation slots. Sentinel errors defined here let services map
// storage-level outcomes onto the API error taxonomy without inspecting
// driver internals themselves.
package repository

import (
	"errors"

	"github.com/lib/pq"
)

// ErrSlotTaken is returned when an insert collides with an existing
// non-rejected slot for the same (room, date, hour). The partial unique index
// raises this even when two writers race past the pre-insert conflict scan,
// which is what makes single submissions observably atomic.
var ErrSlotTaken = errors.New("slot already reserved")

// pq error code for unique_violation.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}
