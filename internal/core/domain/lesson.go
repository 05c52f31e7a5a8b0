package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

type LessonStatus string

const (
	LessonActive    LessonStatus = "active"
	LessonCancelled LessonStatus = "cancelled"
	LessonCompleted LessonStatus = "completed"
)

type LessonKind string

const (
	LessonGroup    LessonKind = "group"
	LessonOneOnOne LessonKind = "one_on_one"
)

type Lesson struct {
	ID              uuid.UUID
	Title           string
	Type            string
	Category        LessonCategory
	Kind            LessonKind
	TrainerID       string
	StartsAt        time.Time
	EndsAt          time.Time
	DurationMinutes int
	MaxParticipants int
	Participants    []string
	Status          LessonStatus
	Version         int
}

// Capacity is MaxParticipants, except that a one-on-one lesson without an
// explicit capacity holds exactly one participant.
func (l *Lesson) Capacity() int {
	if l.Kind == LessonOneOnOne && l.MaxParticipants <= 0 {
		return 1
	}
	return l.MaxParticipants
}

func (l *Lesson) IsFull() bool {
	return len(l.Participants) >= l.Capacity()
}

func (l *Lesson) HasParticipant(userID string) bool {
	return slices.Contains(l.Participants, userID)
}

func (l *Lesson) TimeUntilStart(now time.Time) time.Duration {
	return l.StartsAt.Sub(now)
}

func (l *Lesson) HoursUntilStart(now time.Time) float64 {
	return l.TimeUntilStart(now).Hours()
}

// IsWithinBookingWindow is true while more than cutoff remains before start.
func (l *Lesson) IsWithinBookingWindow(now time.Time, cutoff time.Duration) bool {
	return l.TimeUntilStart(now) > cutoff
}

// IsWithinCancelWindow is true while at least cutoff remains before start.
func (l *Lesson) IsWithinCancelWindow(now time.Time, cutoff time.Duration) bool {
	return l.TimeUntilStart(now) >= cutoff
}

func (l *Lesson) HasStarted(now time.Time) bool {
	return !now.Before(l.StartsAt)
}

// EffectiveStatus derives completed from the end time; it is never stored.
func (l *Lesson) EffectiveStatus(now time.Time) LessonStatus {
	if l.Status == LessonCancelled {
		return LessonCancelled
	}
	if !l.EndsAt.IsZero() && now.After(l.EndsAt) {
		return LessonCompleted
	}
	if l.Status == "" {
		return LessonActive
	}
	return l.Status
}

// WithParticipant returns the participant set with userID added. The lesson
// itself is not modified.
func (l *Lesson) WithParticipant(userID string) ([]string, error) {
	if l.HasParticipant(userID) {
		return nil, ErrAlreadyBooked
	}
	if l.IsFull() {
		return nil, ErrLessonFull
	}

	out := make([]string, 0, len(l.Participants)+1)
	out = append(out, l.Participants...)
	return append(out, userID), nil
}

// WithoutParticipant returns the participant set with userID removed.
func (l *Lesson) WithoutParticipant(userID string) ([]string, error) {
	if !l.HasParticipant(userID) {
		return nil, ErrNotBooked
	}

	out := make([]string, 0, len(l.Participants))
	for _, p := range l.Participants {
		if p != userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (l *Lesson) Snapshot() LessonSnapshot {
	return LessonSnapshot{
		Title:           l.Title,
		Type:            l.Type,
		Category:        l.Category,
		TrainerID:       l.TrainerID,
		StartsAt:        l.StartsAt,
		EndsAt:          l.EndsAt,
		DurationMinutes: l.DurationMinutes,
	}
}
