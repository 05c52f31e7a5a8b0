package domain

import (
	"errors"
	"fmt"
)

var (
	// Validation errors: the caller can correct these.
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrLessonFull          = errors.New("lesson is full")
	ErrAlreadyBooked       = errors.New("user already booked this lesson")
	ErrNotBooked           = errors.New("user is not booked on this lesson")
	ErrTooLateToBook       = errors.New("too late to book this lesson")
	ErrCancelTooLate       = errors.New("too late to cancel this lesson")
	ErrLessonUnavailable   = errors.New("lesson is not open for booking")
	ErrInvalidAmount       = errors.New("invalid credit amount")

	ErrMembershipCancelled  = errors.New("membership cancelled")
	ErrMembershipFrozen     = errors.New("membership frozen")
	ErrMembershipInactive   = errors.New("membership inactive")
	ErrMembershipNotStarted = errors.New("membership has not started yet")

	// Integrity errors: a bug or a lost race.
	ErrAccountNotFound    = errors.New("account not found")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrRecordNotFound     = errors.New("booking record not found")
	ErrVersionConflict    = errors.New("optimistic lock failed: lesson was modified by another transaction")
	ErrCompensationFailed = errors.New("compensation failed: needs reconciliation")

	// External errors.
	ErrUnavailable = errors.New("backing service unavailable")
	ErrTimeout     = errors.New("operation timed out")
	ErrLockBusy    = errors.New("lesson is locked by another operation")
)

type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindIntegrity
	KindUnavailable
	KindTimeout
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindIntegrity:
		return "integrity"
	case KindUnavailable:
		return "unavailable"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

var validationErrors = []error{
	ErrInsufficientCredits,
	ErrLessonFull,
	ErrAlreadyBooked,
	ErrNotBooked,
	ErrTooLateToBook,
	ErrCancelTooLate,
	ErrLessonUnavailable,
	ErrInvalidAmount,
	ErrMembershipCancelled,
	ErrMembershipFrozen,
	ErrMembershipInactive,
	ErrMembershipNotStarted,
}

var integrityErrors = []error{
	ErrAccountNotFound,
	ErrLessonNotFound,
	ErrRecordNotFound,
	ErrVersionConflict,
	ErrCompensationFailed,
}

// KindOf classifies err. Timeout wins over everything else so a wrapped
// deadline is never reported as a business rule.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	if errors.Is(err, ErrTimeout) {
		return KindTimeout
	}
	if errors.Is(err, ErrCompensationFailed) {
		return KindIntegrity
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return KindValidation
		}
	}
	for _, target := range integrityErrors {
		if errors.Is(err, target) {
			return KindIntegrity
		}
	}
	if errors.Is(err, ErrUnavailable) || errors.Is(err, ErrLockBusy) {
		return KindUnavailable
	}
	return KindUnknown
}

// CancelTooLateError carries the hours left before the lesson so the caller
// can tell the user how far inside the cutoff they are.
type CancelTooLateError struct {
	HoursUntilLesson float64
}

func (e *CancelTooLateError) Error() string {
	return fmt.Sprintf("%s: lesson starts in %.1f hours", ErrCancelTooLate, e.HoursUntilLesson)
}

func (e *CancelTooLateError) Is(target error) bool {
	return target == ErrCancelTooLate
}
