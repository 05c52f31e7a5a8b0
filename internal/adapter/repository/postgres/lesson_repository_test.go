package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/srgjo27/studio_booking/internal/adapter/repository/postgres"
	"github.com/srgjo27/studio_booking/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lessonCols = []string{"id", "title", "type", "category", "lesson_kind", "trainer_id", "starts_at", "ends_at",
	"duration_minutes", "max_participants", "participants", "status", "version"}

func TestLessonGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewLessonRepository(db)
	id := uuid.New()
	start := time.Now().Add(24 * time.Hour)

	mock.ExpectQuery("FROM lessons WHERE id = ").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(lessonCols).AddRow(
			id.String(), "Morning Flow", "vinyasa", "yoga", "group", "t1", start, start.Add(time.Hour),
			60, 10, []byte(`{u1,u2}`), "active", 3,
		))

	lesson, err := repo.GetByID(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, domain.CategoryYoga, lesson.Category)
	assert.Equal(t, []string{"u1", "u2"}, lesson.Participants)
	assert.Equal(t, 3, lesson.Version)
}

func TestLessonGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewLessonRepository(db)

	mock.ExpectQuery("FROM lessons WHERE id = ").WillReturnRows(sqlmock.NewRows(lessonCols))

	_, err = repo.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrLessonNotFound)
}

func TestUpdateParticipants_VersionConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewLessonRepository(db)
	id := uuid.New()

	mock.ExpectExec("UPDATE lessons").
		WithArgs(pq.Array([]string{"u1"}), id, 3).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateParticipants(context.Background(), id, []string{"u1"}, 3)

	assert.ErrorIs(t, err, domain.ErrVersionConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateParticipants_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewLessonRepository(db)
	id := uuid.New()

	mock.ExpectExec("UPDATE lessons").
		WithArgs(sqlmock.AnyArg(), id, 0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.UpdateParticipants(context.Background(), id, []string{"u1"}, 0))
}
