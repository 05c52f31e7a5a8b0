package postgres_test

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/srgjo27/studio_booking/internal/adapter/repository/postgres"
	"github.com/srgjo27/studio_booking/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var recordCols = []string{"id", "user_id", "lesson_id", "lesson", "action", "status", "booking_date", "action_date", "cancel_reason"}

type jsonSnapshot struct{ title string }

func (j jsonSnapshot) Match(v driver.Value) bool {
	b, ok := v.([]byte)
	if !ok {
		return false
	}
	var snap domain.LessonSnapshot
	return json.Unmarshal(b, &snap) == nil && snap.Title == j.title
}

func TestBookingRecordCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewBookingRecordRepository(db)
	now := time.Now()
	rec := &domain.BookingRecord{
		ID:          uuid.New(),
		UserID:      "alice",
		LessonID:    uuid.New(),
		Lesson:      domain.LessonSnapshot{Title: "Morning Flow", Category: domain.CategoryYoga},
		Action:      domain.ActionBooked,
		Status:      domain.BookingBooked,
		BookingDate: now,
		ActionDate:  now,
	}

	mock.ExpectExec("INSERT INTO booking_records").
		WithArgs(rec.ID, "alice", rec.LessonID, jsonSnapshot{title: "Morning Flow"}, "booked", "booked", now, now, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRecordFindLatest(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewBookingRecordRepository(db)
	id, lessonID := uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectQuery("FROM booking_records").
		WithArgs("alice", lessonID).
		WillReturnRows(sqlmock.NewRows(recordCols).AddRow(
			id.String(), "alice", lessonID.String(), []byte(`{"title":"Reformer","category":"pilates"}`),
			"cancelled", "cancelled", now, now, "sick",
		))

	rec, err := repo.FindLatest(context.Background(), "alice", lessonID)

	require.NoError(t, err)
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, "Reformer", rec.Lesson.Title)
	assert.Equal(t, domain.CategoryPilates, rec.Lesson.Category)
	assert.Equal(t, domain.BookingCancelled, rec.Status)
	require.NotNil(t, rec.CancelReason)
	assert.Equal(t, "sick", *rec.CancelReason)
}

func TestBookingRecordFindLatest_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewBookingRecordRepository(db)

	mock.ExpectQuery("FROM booking_records").WillReturnRows(sqlmock.NewRows(recordCols))

	_, err = repo.FindLatest(context.Background(), "alice", uuid.New())

	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestBookingRecordUpdateStatus_Missing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewBookingRecordRepository(db)

	mock.ExpectExec("UPDATE booking_records").WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateStatus(context.Background(), uuid.New(), domain.BookingCancelled, domain.ActionCancelled, nil, time.Now())

	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}
