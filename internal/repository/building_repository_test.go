package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBuildingRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestBuildingRepositoryList(t *testing.T) {
	db, mock, cleanup := newBuildingRepoMock(t)
	defer cleanup()
	repo := NewBuildingRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "address", "no_stairs", "room_count"}).
		AddRow("b-1", "North Hall", "1 Main St", false, 8).
		AddRow("b-2", "South Annex", "2 Main St", true, 3)

	mock.ExpectQuery("LEFT JOIN rooms").
		WillReturnRows(rows)

	buildings, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, buildings, 2)
	assert.Equal(t, 8, buildings[0].RoomCount)
	assert.True(t, buildings[1].NoStairs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildingRepositoryListFloors(t *testing.T) {
	db, mock, cleanup := newBuildingRepoMock(t)
	defer cleanup()
	repo := NewBuildingRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT floor FROM rooms WHERE building_id = $1 ORDER BY floor ASC")).
		WithArgs("b-1").
		WillReturnRows(sqlmock.NewRows([]string{"floor"}).AddRow(0).AddRow(1).AddRow(2))

	floors, err := repo.ListFloors(context.Background(), "b-1")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, floors)
	assert.NoError(t, mock.ExpectationsWereMet())
}
