package activity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/carbon-tracker/internal/database"
)

func newRepoWithMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return NewRepository(database.NewBunDB(sqlDB)), mock
}

var activityColumns = []string{"id", "user_id", "activity_type", "amount", "unit", "emission", "created_at"}

func TestRepository_Create(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	a := newActivity(uuid.New(), "beef", 27, time.Now().UTC())

	mock.ExpectExec(`INSERT INTO "activities" .*'beef'`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), a))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`INSERT INTO "activities"`).
		WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), newActivity(uuid.New(), "beef", 27, time.Now().UTC()))
	assert.ErrorContains(t, err, "db down")
}

func TestRepository_ListByUser(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	userID := uuid.New()
	newer, older := uuid.New(), uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT .* FROM "activities" AS "a" WHERE \(user_id = '` + userID.String() + `'\) ORDER BY "created_at" DESC`).
		WillReturnRows(sqlmock.NewRows(activityColumns).
			AddRow(newer.String(), userID.String(), "chicken", 2.0, "kg", 13.8, now).
			AddRow(older.String(), userID.String(), "car_petrol", 10.0, "km", 1.92, now.Add(-time.Hour)))

	list, err := repo.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer, list[0].ID)
	assert.Equal(t, "km", list[1].Unit)
	assert.Equal(t, 1.92, list[1].Emission)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByUser_Empty(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT .* FROM "activities"`).
		WillReturnRows(sqlmock.NewRows(activityColumns))

	list, err := repo.ListByUser(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, list)
}
