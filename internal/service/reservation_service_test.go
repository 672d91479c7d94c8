package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchconnector/buildingrez-api/internal/models"
	"github.com/couchconnector/buildingrez-api/internal/repository"
	appErrors "github.com/couchconnector/buildingrez-api/pkg/errors"
)

type fakeSlotRepo struct {
	insertRangeIDs []string
	insertRangeErr error
	slot           *models.Slot
	findErr        error
	updateOK       bool
	updateErr      error
	batchCount     int64
	deleteOK       bool
	pending        []models.SlotDetail
	detailed       []models.SlotDetail
	forRoom        []models.SlotDetail

	lastFrom []models.SlotStatus
	lastTo   models.SlotStatus
}

func (f *fakeSlotRepo) InsertRange(context.Context, string, string, time.Time, int, int) ([]string, error) {
	return f.insertRangeIDs, f.insertRangeErr
}

func (f *fakeSlotRepo) FindByID(context.Context, string) (*models.Slot, error) {
	return f.slot, f.findErr
}

func (f *fakeSlotRepo) ListPending(context.Context) ([]models.SlotDetail, error) {
	return f.pending, nil
}

func (f *fakeSlotRepo) ListDetailed(context.Context, models.SlotStatus) ([]models.SlotDetail, error) {
	return f.detailed, nil
}

func (f *fakeSlotRepo) ListForRoom(context.Context, string, time.Time, time.Time) ([]models.SlotDetail, error) {
	return f.forRoom, nil
}

func (f *fakeSlotRepo) UpdateStatus(_ context.Context, _ string, from []models.SlotStatus, to models.SlotStatus) (bool, error) {
	f.lastFrom, f.lastTo = from, to
	return f.updateOK, f.updateErr
}

func (f *fakeSlotRepo) UpdateStatusBatch(_ context.Context, _ []string, from []models.SlotStatus, to models.SlotStatus) (int64, error) {
	f.lastFrom, f.lastTo = from, to
	return f.batchCount, nil
}

func (f *fakeSlotRepo) Delete(context.Context, string) (bool, error) {
	return f.deleteOK, nil
}

type fakeRoomFinder struct {
	room *models.RoomWithBuilding
	err  error
}

func (f *fakeRoomFinder) FindByID(context.Context, string) (*models.RoomWithBuilding, error) {
	return f.room, f.err
}

func testRoom() *models.RoomWithBuilding {
	return &models.RoomWithBuilding{ID: "room-1", BuildingID: "b-1", BuildingName: "North Hall", RoomNumber: "101"}
}

func newReservationService(slots *fakeSlotRepo, rooms *fakeRoomFinder) *ReservationService {
	return NewReservationService(slots, rooms, nil, nil, nil, nil)
}

func TestSubmitHappyPath(t *testing.T) {
	slots := &fakeSlotRepo{insertRangeIDs: []string{"a", "b"}}
	svc := newReservationService(slots, &fakeRoomFinder{room: testRoom()})

	result, err := svc.Submit(context.Background(), SubmitReservationRequest{
		RoomID:     "room-1",
		ReservedBy: "Chess Club",
		Date:       "2026-09-07", // a Monday
		StartHour:  9,
		EndHour:    11,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.HoursReserved)
	assert.Equal(t, []string{"a", "b"}, result.SlotIDs)
}

func TestSubmitRejectsWeekend(t *testing.T) {
	svc := newReservationService(&fakeSlotRepo{}, &fakeRoomFinder{room: testRoom()})

	_, err := svc.Submit(context.Background(), SubmitReservationRequest{
		RoomID:     "room-1",
		ReservedBy: "Chess Club",
		Date:       "2026-09-05", // a Saturday
		StartHour:  9,
		EndHour:    10,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSubmitRejectsBadHourWindow(t *testing.T) {
	svc := newReservationService(&fakeSlotRepo{}, &fakeRoomFinder{room: testRoom()})

	cases := []struct {
		name       string
		start, end int
	}{
		{"start before opening", 6, 8},
		{"end before start", 11, 9},
		{"empty window", 9, 9},
		{"end past closing", 19, 21},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), SubmitReservationRequest{
				RoomID:     "room-1",
				ReservedBy: "Chess Club",
				Date:       "2026-09-07",
				StartHour:  tc.start,
				EndHour:    tc.end,
			})
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
		})
	}
}

func TestSubmitLastBookableHour(t *testing.T) {
	slots := &fakeSlotRepo{insertRangeIDs: []string{"a"}}
	svc := newReservationService(slots, &fakeRoomFinder{room: testRoom()})

	result, err := svc.Submit(context.Background(), SubmitReservationRequest{
		RoomID:     "room-1",
		ReservedBy: "Chess Club",
		Date:       "2026-09-07",
		StartHour:  19,
		EndHour:    20,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.HoursReserved)
}

func TestSubmitUnknownRoom(t *testing.T) {
	svc := newReservationService(&fakeSlotRepo{}, &fakeRoomFinder{err: sql.ErrNoRows})

	_, err := svc.Submit(context.Background(), SubmitReservationRequest{
		RoomID:     "missing",
		ReservedBy: "Chess Club",
		Date:       "2026-09-07",
		StartHour:  9,
		EndHour:    10,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSubmitConflictNamesHour(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	slots := &fakeSlotRepo{insertRangeErr: &repository.HourConflictError{Date: date, Hour: 10}}
	svc := newReservationService(slots, &fakeRoomFinder{room: testRoom()})

	_, err := svc.Submit(context.Background(), SubmitReservationRequest{
		RoomID:     "room-1",
		ReservedBy: "Chess Club",
		Date:       "2026-09-07",
		StartHour:  9,
		EndHour:    12,
	})
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "10:00")
	assert.Equal(t, 10, appErr.Details["hour"])
}

func TestApproveOnlyFromPending(t *testing.T) {
	slots := &fakeSlotRepo{slot: &models.Slot{ID: "s1", Status: models.StatusRejected}, updateOK: false}
	svc := newReservationService(slots, &fakeRoomFinder{room: testRoom()})

	err := svc.Approve(context.Background(), "s1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Equal(t, []models.SlotStatus{models.StatusPending}, slots.lastFrom)
	assert.Equal(t, models.StatusApproved, slots.lastTo)
}

func TestRejectAllowedFromApproved(t *testing.T) {
	slots := &fakeSlotRepo{slot: &models.Slot{ID: "s1", Status: models.StatusApproved}, updateOK: true}
	svc := newReservationService(slots, &fakeRoomFinder{room: testRoom()})

	require.NoError(t, svc.Reject(context.Background(), "s1"))
	assert.Equal(t, []models.SlotStatus{models.StatusPending, models.StatusApproved}, slots.lastFrom)
	assert.Equal(t, models.StatusRejected, slots.lastTo)
}

func TestTransitionMissingSlot(t *testing.T) {
	slots := &fakeSlotRepo{findErr: sql.ErrNoRows}
	svc := newReservationService(slots, &fakeRoomFinder{room: testRoom()})

	err := svc.Approve(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestApproveBlockCountsTransitioned(t *testing.T) {
	slots := &fakeSlotRepo{batchCount: 2}
	svc := newReservationService(slots, &fakeRoomFinder{room: testRoom()})

	count, err := svc.ApproveBlock(context.Background(), BlockActionRequest{SlotIDs: []string{"a", "b", "c"}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, []models.SlotStatus{models.StatusPending}, slots.lastFrom)
}

func TestBlockActionRequiresIDs(t *testing.T) {
	svc := newReservationService(&fakeSlotRepo{}, &fakeRoomFinder{room: testRoom()})

	_, err := svc.ApproveBlock(context.Background(), BlockActionRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCancelMissing(t *testing.T) {
	svc := newReservationService(&fakeSlotRepo{deleteOK: false}, &fakeRoomFinder{room: testRoom()})

	err := svc.Cancel(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestListRejectsUnknownStatus(t *testing.T) {
	svc := newReservationService(&fakeSlotRepo{}, &fakeRoomFinder{room: testRoom()})

	_, err := svc.List(context.Background(), "archived")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestPendingBlocksGroupsContiguousHours(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	slots := &fakeSlotRepo{pending: []models.SlotDetail{
		slotAt("Chess Club", "room-1", date, 9),
		slotAt("Chess Club", "room-1", date, 10),
		slotAt("Debate Team", "room-1", date, 11),
	}}
	svc := newReservationService(slots, &fakeRoomFinder{room: testRoom()})

	blocks, err := svc.PendingBlocks(context.Background())
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Len(t, blocks[0], 2)
}

func TestRoomScheduleSkipsWeekends(t *testing.T) {
	svc := newReservationService(&fakeSlotRepo{}, &fakeRoomFinder{room: testRoom()})
	svc.now = func() time.Time { return time.Date(2026, 9, 7, 10, 30, 0, 0, time.UTC) }

	schedule, err := svc.RoomSchedule(context.Background(), "room-1")
	require.NoError(t, err)
	require.NotNil(t, schedule.Room)
	for _, day := range schedule.Days {
		wd := day.Date.Weekday()
		assert.NotEqual(t, time.Saturday, wd)
		assert.NotEqual(t, time.Sunday, wd)
	}
	// three weeks of weekdays plus the starting Monday of the fourth
	assert.Equal(t, 16, len(schedule.Days))
}
