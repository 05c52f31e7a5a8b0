package domain

import "time"

const (
	DefaultBookingCutoff = 2 * time.Hour
	DefaultCancelCutoff  = 8 * time.Hour
)

// BookingPolicy holds the studio's time rules.
type BookingPolicy struct {
	BookingCutoff time.Duration
	CancelCutoff  time.Duration
}

func DefaultBookingPolicy() BookingPolicy {
	return BookingPolicy{
		BookingCutoff: DefaultBookingCutoff,
		CancelCutoff:  DefaultCancelCutoff,
	}
}
