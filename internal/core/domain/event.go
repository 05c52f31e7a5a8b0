package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingEvent is published after a booking lifecycle change.
type BookingEvent struct {
	ID          uuid.UUID     `json:"id"`
	RecordID    uuid.UUID     `json:"record_id"`
	Action      BookingAction `json:"action"`
	UserID      string        `json:"user_id"`
	LessonID    uuid.UUID     `json:"lesson_id"`
	LessonTitle string        `json:"lesson_title"`
	StartsAt    time.Time     `json:"starts_at"`
	OccurredAt  time.Time     `json:"occurred_at"`
}

func (e BookingEvent) RoutingKey() string {
	return "lesson." + string(e.Action)
}

// DedupKey identifies one delivery of this event. Re-sending the same event
// yields the same key; two lifecycle changes never share one, even when the
// booking record could not be written and RecordID is nil.
func (e BookingEvent) DedupKey() string {
	return string(e.Action) + ":" + e.UserID + ":" + e.LessonID.String() + ":" + e.ID.String()
}
