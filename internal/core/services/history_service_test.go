package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/srgjo27/studio_booking/internal/core/domain"
	"github.com/srgjo27/studio_booking/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_SummaryCountsByOutcome(t *testing.T) {
	records := &memRecords{}
	history := services.NewHistoryService(records, services.WithLogger(quietLogger()))
	ctx := context.Background()

	s := newStudio(t, nil)
	past := s.addLesson(-48*time.Hour, 10)
	upcoming := s.addLesson(48*time.Hour, 10)
	dropped := s.addLesson(72*time.Hour, 10)

	_, err := history.Record(ctx, "alice", &past, domain.ActionBooked, "", baseTime.Add(-72*time.Hour))
	require.NoError(t, err)
	_, err = history.Record(ctx, "alice", &upcoming, domain.ActionAdminAdded, "", baseTime)
	require.NoError(t, err)
	_, err = history.Record(ctx, "alice", &dropped, domain.ActionBooked, "", baseTime)
	require.NoError(t, err)
	_, err = history.UpdateStatus(ctx, "alice", dropped.ID, domain.BookingCancelled, domain.ActionCancelled, "travel", baseTime)
	require.NoError(t, err)

	sum, err := history.Summary(ctx, "alice", baseTime)
	require.NoError(t, err)
	assert.Equal(t, domain.HistorySummary{Upcoming: 1, Attended: 1, Cancelled: 1}, sum)

	list, err := history.UserHistory(ctx, "alice", 0)
	require.NoError(t, err)
	assert.Len(t, list, 3)
	assert.Equal(t, dropped.ID, list[0].LessonID)
	require.NotNil(t, list[0].CancelReason)
	assert.Equal(t, "travel", *list[0].CancelReason)
}

func TestHistory_UpdateStatusWithoutRecord(t *testing.T) {
	history := services.NewHistoryService(&memRecords{}, services.WithLogger(quietLogger()))
	s := newStudio(t, nil)
	lesson := s.addLesson(24*time.Hour, 1)

	_, err := history.UpdateStatus(context.Background(), "alice", lesson.ID, domain.BookingCancelled, domain.ActionCancelled, "", baseTime)

	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}
