package service

import "github.com/couchconnector/buildingrez-api/internal/models"

// GroupSlotBlocks partitions hourly slots into contiguous blocks so an
// administrator can act on a multi-hour reservation as one unit. The input
// must already be sorted by (reserved_by, slot_date, slot_hour); the scan
// starts a new block whenever requester, room or date changes, or the hour is
// not exactly one past the previous slot's. Every input slot lands in exactly
// one block and block order follows input order.
func GroupSlotBlocks(slots []models.SlotDetail) [][]models.SlotDetail {
	if len(slots) == 0 {
		return nil
	}

	blocks := make([][]models.SlotDetail, 0, len(slots))
	current := []models.SlotDetail{slots[0]}

	for _, slot := range slots[1:] {
		last := current[len(current)-1]
		if slot.ReservedBy == last.ReservedBy &&
			slot.RoomID == last.RoomID &&
			slot.SlotDate.Equal(last.SlotDate) &&
			slot.SlotHour == last.SlotHour+1 {
			current = append(current, slot)
			continue
		}
		blocks = append(blocks, current)
		current = []models.SlotDetail{slot}
	}

	return append(blocks, current)
}
