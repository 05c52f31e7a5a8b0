package domain_test

import (
	"testing"
	"time"

	"github.com/srgjo27/studio_booking/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

func TestLesson_Capacity(t *testing.T) {
	tests := []struct {
		name string
		kind domain.LessonKind
		max  int
		want int
	}{
		{"group", domain.LessonGroup, 12, 12},
		{"one on one default", domain.LessonOneOnOne, 0, 1},
		{"one on one explicit", domain.LessonOneOnOne, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := domain.Lesson{Kind: tt.kind, MaxParticipants: tt.max}
			assert.Equal(t, tt.want, l.Capacity())
		})
	}
}

func TestLesson_Windows(t *testing.T) {
	l := domain.Lesson{StartsAt: now.Add(8 * time.Hour)}

	assert.True(t, l.IsWithinCancelWindow(now, 8*time.Hour))
	assert.False(t, l.IsWithinCancelWindow(now.Add(time.Second), 8*time.Hour))

	assert.False(t, l.IsWithinBookingWindow(now.Add(6*time.Hour), 2*time.Hour))
	assert.True(t, l.IsWithinBookingWindow(now.Add(6*time.Hour-time.Second), 2*time.Hour))

	assert.InDelta(t, 8.0, l.HoursUntilStart(now), 1e-9)
	assert.False(t, l.HasStarted(now))
	assert.True(t, l.HasStarted(l.StartsAt))
}

func TestLesson_EffectiveStatus(t *testing.T) {
	l := domain.Lesson{StartsAt: now, EndsAt: now.Add(time.Hour), Status: domain.LessonActive}

	assert.Equal(t, domain.LessonActive, l.EffectiveStatus(now.Add(30*time.Minute)))
	assert.Equal(t, domain.LessonCompleted, l.EffectiveStatus(now.Add(2*time.Hour)))

	l.Status = domain.LessonCancelled
	assert.Equal(t, domain.LessonCancelled, l.EffectiveStatus(now.Add(2*time.Hour)))
}

func TestLesson_ParticipantSets(t *testing.T) {
	l := domain.Lesson{MaxParticipants: 2, Participants: []string{"alice"}}

	added, err := l.WithParticipant("bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, added)
	assert.Equal(t, []string{"alice"}, l.Participants)

	_, err = l.WithParticipant("alice")
	assert.ErrorIs(t, err, domain.ErrAlreadyBooked)

	full := domain.Lesson{MaxParticipants: 2, Participants: added}
	_, err = full.WithParticipant("carol")
	assert.ErrorIs(t, err, domain.ErrLessonFull)

	removed, err := full.WithoutParticipant("alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, removed)

	_, err = full.WithoutParticipant("carol")
	assert.ErrorIs(t, err, domain.ErrNotBooked)
}
