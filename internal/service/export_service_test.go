package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchconnector/buildingrez-api/internal/models"
	appErrors "github.com/couchconnector/buildingrez-api/pkg/errors"
)

type fakeDetailedLister struct {
	slots      []models.SlotDetail
	lastStatus models.SlotStatus
}

func (f *fakeDetailedLister) ListDetailed(_ context.Context, status models.SlotStatus) ([]models.SlotDetail, error) {
	f.lastStatus = status
	return f.slots, nil
}

func TestExportReservationsCSV(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	lister := &fakeDetailedLister{slots: []models.SlotDetail{
		{
			ReservedBy:   "Chess Club",
			SlotDate:     date,
			SlotHour:     9,
			Status:       models.StatusApproved,
			RoomNumber:   "101",
			BuildingName: "North Hall",
			CreatedAt:    date,
		},
	}}
	svc := NewExportService(lister, nil)

	out, err := svc.ReservationsCSV(context.Background(), models.StatusApproved)
	require.NoError(t, err)

	content := string(out)
	assert.True(t, strings.HasPrefix(content, "Building,Room,Date,Hour,Reserved By,Status,Submitted"))
	assert.Contains(t, content, "North Hall,101,2026-09-07,9,Chess Club,approved")
	assert.Equal(t, models.StatusApproved, lister.lastStatus)
}

func TestExportReservationsPDF(t *testing.T) {
	svc := NewExportService(&fakeDetailedLister{}, nil)

	out, err := svc.ReservationsPDF(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestExportRejectsUnknownStatus(t *testing.T) {
	svc := NewExportService(&fakeDetailedLister{}, nil)

	_, err := svc.ReservationsCSV(context.Background(), "archived")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
