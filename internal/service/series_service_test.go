package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchconnector/buildingrez-api/internal/models"
	"github.com/couchconnector/buildingrez-api/internal/repository"
	"github.com/couchconnector/buildingrez-api/pkg/config"
	appErrors "github.com/couchconnector/buildingrez-api/pkg/errors"
)

type fakeSeriesSlots struct {
	inserted []models.Slot
	taken    map[string]bool // keys built with takenKey
	series   []models.SeriesSummary
	deleted  int64
	lastKey  models.SeriesKey
	listedAt time.Time
}

func (f *fakeSeriesSlots) InsertOne(_ context.Context, slot *models.Slot) error {
	if f.taken[takenKey(slot.SlotDate, slot.SlotHour)] {
		return repository.ErrSlotTaken
	}
	f.inserted = append(f.inserted, *slot)
	return nil
}

func (f *fakeSeriesSlots) ListSeries(_ context.Context, from time.Time) ([]models.SeriesSummary, error) {
	f.listedAt = from
	return f.series, nil
}

func (f *fakeSeriesSlots) DeleteSeries(_ context.Context, key models.SeriesKey) (int64, error) {
	f.lastKey = key
	return f.deleted, nil
}

func takenKey(date time.Time, hour int) string {
	return fmt.Sprintf("%s:%d", date.Format(models.DateFormat), hour)
}

func newSeriesService(slots *fakeSeriesSlots, rooms *fakeRoomFinder) *SeriesService {
	svc := NewSeriesService(slots, rooms, nil, nil, config.SeriesConfig{
		MaxWeeks:        52,
		DefaultWeeks:    8,
		ConflictDisplay: 5,
	}, nil, nil)
	svc.now = func() time.Time { return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestSeriesCreateAnchorsOnNextMatchingWeekday(t *testing.T) {
	slots := &fakeSeriesSlots{}
	svc := newSeriesService(slots, &fakeRoomFinder{room: testRoom()})

	result, err := svc.Create(context.Background(), CreateSeriesRequest{
		ReservedBy: "Recurring: Robotics",
		RoomID:     "room-1",
		Weekday:    int(time.Monday),
		StartHour:  9,
		EndHour:    11,
		Weeks:      3,
		StartDate:  "2026-09-01", // a Tuesday
	})
	require.NoError(t, err)

	// next Monday on or after Sep 1 is Sep 7
	assert.Equal(t, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), result.FirstDate)
	assert.Equal(t, 6, result.InsertedCount)
	assert.Zero(t, result.ConflictCount)
	require.Len(t, slots.inserted, 6)
	assert.Equal(t, time.Date(2026, 9, 21, 0, 0, 0, 0, time.UTC), slots.inserted[5].SlotDate)
	assert.Equal(t, 10, slots.inserted[5].SlotHour)
	assert.Equal(t, models.StatusApproved, slots.inserted[0].Status)
}

func TestSeriesCreateStartDateMatchingWeekday(t *testing.T) {
	slots := &fakeSeriesSlots{}
	svc := newSeriesService(slots, &fakeRoomFinder{room: testRoom()})

	result, err := svc.Create(context.Background(), CreateSeriesRequest{
		ReservedBy: "Weekly: Yoga",
		RoomID:     "room-1",
		Weekday:    int(time.Tuesday),
		StartHour:  8,
		EndHour:    9,
		Weeks:      1,
		StartDate:  "2026-09-01",
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), result.FirstDate)
	assert.Equal(t, 1, result.InsertedCount)
}

func TestSeriesCreateSkipsConflictsAndKeepsGoing(t *testing.T) {
	conflictDate := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	slots := &fakeSeriesSlots{taken: map[string]bool{takenKey(conflictDate, 9): true}}
	svc := newSeriesService(slots, &fakeRoomFinder{room: testRoom()})

	result, err := svc.Create(context.Background(), CreateSeriesRequest{
		ReservedBy: "Recurring: Robotics",
		RoomID:     "room-1",
		Weekday:    int(time.Monday),
		StartHour:  9,
		EndHour:    11,
		Weeks:      3,
		StartDate:  "2026-09-01",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, result.InsertedCount)
	assert.Equal(t, 1, result.ConflictCount)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, conflictDate, result.Conflicts[0].Date)
	assert.Equal(t, 9, result.Conflicts[0].Hour)
	assert.Zero(t, result.MoreConflicts)
}

func TestSeriesCreateCapsConflictDisplay(t *testing.T) {
	taken := map[string]bool{}
	start := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	for week := 0; week < 8; week++ {
		taken[takenKey(start.AddDate(0, 0, 7*week), 9)] = true
	}
	slots := &fakeSeriesSlots{taken: taken}
	svc := newSeriesService(slots, &fakeRoomFinder{room: testRoom()})

	result, err := svc.Create(context.Background(), CreateSeriesRequest{
		ReservedBy: "Recurring: Robotics",
		RoomID:     "room-1",
		Weekday:    int(time.Monday),
		StartHour:  9,
		EndHour:    10,
		Weeks:      8,
		StartDate:  "2026-09-01",
	})
	require.NoError(t, err)
	assert.Zero(t, result.InsertedCount)
	assert.Equal(t, 8, result.ConflictCount)
	assert.Len(t, result.Conflicts, 5)
	assert.Equal(t, 3, result.MoreConflicts)
	// display list stays sorted by date
	assert.Equal(t, start, result.Conflicts[0].Date)
}

func TestSeriesCreateClampsWeeks(t *testing.T) {
	slots := &fakeSeriesSlots{}
	svc := newSeriesService(slots, &fakeRoomFinder{room: testRoom()})

	result, err := svc.Create(context.Background(), CreateSeriesRequest{
		ReservedBy: "Weekly: Yoga",
		RoomID:     "room-1",
		Weekday:    int(time.Friday),
		StartHour:  7,
		EndHour:    8,
		Weeks:      500,
		StartDate:  "2026-09-01",
	})
	require.NoError(t, err)
	assert.Equal(t, 52, result.InsertedCount)
}

func TestSeriesCreateValidation(t *testing.T) {
	svc := newSeriesService(&fakeSeriesSlots{}, &fakeRoomFinder{room: testRoom()})

	cases := []struct {
		name string
		req  CreateSeriesRequest
	}{
		{"blank label", CreateSeriesRequest{ReservedBy: "   ", RoomID: "room-1", Weekday: 1, StartHour: 9, EndHour: 10}},
		{"bad weekday", CreateSeriesRequest{ReservedBy: "Weekly: Yoga", RoomID: "room-1", Weekday: 7, StartHour: 9, EndHour: 10}},
		{"rejected initial status", CreateSeriesRequest{ReservedBy: "Weekly: Yoga", RoomID: "room-1", Weekday: 1, StartHour: 9, EndHour: 10, Status: "rejected"}},
		{"start too early", CreateSeriesRequest{ReservedBy: "Weekly: Yoga", RoomID: "room-1", Weekday: 1, StartHour: 6, EndHour: 8}},
		{"end past closing", CreateSeriesRequest{ReservedBy: "Weekly: Yoga", RoomID: "room-1", Weekday: 1, StartHour: 19, EndHour: 21}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.req)
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
		})
	}
}

func TestSeriesCreateBuildingMismatch(t *testing.T) {
	svc := newSeriesService(&fakeSeriesSlots{}, &fakeRoomFinder{room: testRoom()})

	_, err := svc.Create(context.Background(), CreateSeriesRequest{
		ReservedBy: "Weekly: Yoga",
		BuildingID: "other-building",
		RoomID:     "room-1",
		Weekday:    1,
		StartHour:  9,
		EndHour:    10,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSeriesListUsesToday(t *testing.T) {
	slots := &fakeSeriesSlots{series: []models.SeriesSummary{{ReservedBy: "Weekly: Yoga"}}}
	svc := newSeriesService(slots, &fakeRoomFinder{room: testRoom()})

	series, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, series, 1)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), slots.listedAt)
}

func TestSeriesDeleteDefaultsFromDate(t *testing.T) {
	slots := &fakeSeriesSlots{deleted: 4}
	svc := newSeriesService(slots, &fakeRoomFinder{room: testRoom()})

	count, err := svc.Delete(context.Background(), DeleteSeriesRequest{
		ReservedBy: "Weekly: Yoga",
		RoomID:     "room-1",
		Weekday:    int(time.Wednesday),
		Status:     "approved",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), slots.lastKey.FromDate)
	assert.Equal(t, time.Wednesday, slots.lastKey.Weekday)
	assert.Equal(t, models.StatusApproved, slots.lastKey.Status)
}

func TestSeriesDeleteZeroMatchesIsNoOp(t *testing.T) {
	slots := &fakeSeriesSlots{deleted: 0}
	svc := newSeriesService(slots, &fakeRoomFinder{room: testRoom()})

	count, err := svc.Delete(context.Background(), DeleteSeriesRequest{
		ReservedBy: "Weekly: Nobody",
		RoomID:     "room-1",
		Weekday:    2,
	})
	require.NoError(t, err)
	assert.Zero(t, count)
}
