package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchconnector/buildingrez-api/internal/models"
)

type fakeStatusCounter struct {
	counts map[models.SlotStatus]int
	err    error
}

func (f *fakeStatusCounter) CountByStatus(_ context.Context, status models.SlotStatus) (int, error) {
	return f.counts[status], f.err
}

type fakeEntityCounter struct {
	total int
}

func (f *fakeEntityCounter) Count(context.Context) (int, error) {
	return f.total, nil
}

func TestDashboardStats(t *testing.T) {
	svc := NewDashboardService(
		&fakeStatusCounter{counts: map[models.SlotStatus]int{models.StatusPending: 3, models.StatusApproved: 7}},
		&fakeEntityCounter{total: 2},
		&fakeEntityCounter{total: 14},
		nil,
	)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Pending)
	assert.Equal(t, 7, stats.Approved)
	assert.Equal(t, 2, stats.Buildings)
	assert.Equal(t, 14, stats.Rooms)
}

func TestDashboardStatsPropagatesError(t *testing.T) {
	svc := NewDashboardService(
		&fakeStatusCounter{err: errors.New("db down")},
		&fakeEntityCounter{},
		&fakeEntityCounter{},
		nil,
	)

	_, err := svc.Stats(context.Background())
	assert.Error(t, err)
}
