package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingAction string

const (
	ActionBooked       BookingAction = "booked"
	ActionCancelled    BookingAction = "cancelled"
	ActionAdminAdded   BookingAction = "admin_added"
	ActionAdminRemoved BookingAction = "admin_removed"
)

type BookingStatus string

const (
	BookingBooked    BookingStatus = "booked"
	BookingCancelled BookingStatus = "cancelled"
)

// LessonSnapshot is the lesson as it looked when the booking was made, so
// history survives later edits or deletion of the lesson.
type LessonSnapshot struct {
	Title           string         `json:"title"`
	Type            string         `json:"type"`
	Category        LessonCategory `json:"category"`
	TrainerID       string         `json:"trainer_id"`
	StartsAt        time.Time      `json:"starts_at"`
	EndsAt          time.Time      `json:"ends_at"`
	DurationMinutes int            `json:"duration_minutes"`
}

type BookingRecord struct {
	ID           uuid.UUID
	UserID       string
	LessonID     uuid.UUID
	Lesson       LessonSnapshot
	Action       BookingAction
	Status       BookingStatus
	BookingDate  time.Time
	ActionDate   time.Time
	CancelReason *string
}

// Attended is true for a booking still active after the lesson ended.
func (r *BookingRecord) Attended(now time.Time) bool {
	return r.Status == BookingBooked && !r.Lesson.EndsAt.IsZero() && now.After(r.Lesson.EndsAt)
}

type HistorySummary struct {
	Upcoming  int `json:"upcoming"`
	Attended  int `json:"attended"`
	Cancelled int `json:"cancelled"`
}
