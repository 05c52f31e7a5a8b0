package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/srgjo27/studio_booking/internal/core/domain"
	"github.com/srgjo27/studio_booking/internal/core/ports"
)

const (
	defaultCancelReason      = "cancelled by user"
	defaultAdminRemoveReason = "removed by admin"
)

type BookResult struct {
	LessonID         uuid.UUID `json:"lesson_id"`
	RecordID         uuid.UUID `json:"record_id,omitempty"`
	RemainingCredits int       `json:"remaining_credits"`
}

// CancelResult reports a finished cancellation. When RefundFailed is set the
// participant was removed but the credit still has to be returned, and
// RemainingCredits is not meaningful.
type CancelResult struct {
	LessonID         uuid.UUID `json:"lesson_id"`
	RecordID         uuid.UUID `json:"record_id,omitempty"`
	RemainingCredits int       `json:"remaining_credits"`
	RefundFailed     bool      `json:"refund_failed"`
}

// BookingService drives the booking state machine. Every operation holds the
// lesson lock, runs under the operation timeout and keeps "credit consumed"
// and "participant added" in step, refunding when the second step fails.
type BookingService struct {
	ledger  *LedgerService
	catalog *CatalogService
	history *HistoryService
	locker  ports.LessonLocker
	opts    options
	tracer  trace.Tracer
}

func NewBookingService(ledger *LedgerService, catalog *CatalogService, history *HistoryService, locker ports.LessonLocker, opts ...Option) *BookingService {
	return &BookingService{
		ledger:  ledger,
		catalog: catalog,
		history: history,
		locker:  locker,
		opts:    buildOptions(opts),
		tracer:  otel.Tracer("github.com/srgjo27/studio_booking/internal/core/services"),
	}
}

func (s *BookingService) Book(ctx context.Context, userID string, lessonID uuid.UUID, now time.Time) (*BookResult, error) {
	return runLocked(s, ctx, "book", userID, lessonID, func(ctx context.Context) (*BookResult, error) {
		acc, err := s.ledger.Account(ctx, userID)
		if err != nil {
			return nil, err
		}

		if err := acc.CheckMembership(now); err != nil {
			return nil, err
		}

		lesson, err := s.catalog.GetLesson(ctx, lessonID)
		if err != nil {
			return nil, err
		}

		if lesson.EffectiveStatus(now) != domain.LessonActive || lesson.HasStarted(now) {
			return nil, domain.ErrLessonUnavailable
		}

		// Before the window and credit checks so a repeat booking always reports AlreadyBooked.
		if lesson.HasParticipant(userID) {
			return nil, domain.ErrAlreadyBooked
		}

		if !s.catalog.IsWithinBookingWindow(lesson, now) {
			return nil, domain.ErrTooLateToBook
		}

		if !acc.CanBook() {
			return nil, domain.ErrInsufficientCredits
		}

		if lesson.IsFull() {
			return nil, domain.ErrLessonFull
		}

		return s.enroll(ctx, userID, lesson, domain.ActionBooked, now)
	})
}

func (s *BookingService) Cancel(ctx context.Context, userID string, lessonID uuid.UUID, reason string, now time.Time) (*CancelResult, error) {
	if reason == "" {
		reason = defaultCancelReason
	}

	return runLocked(s, ctx, "cancel", userID, lessonID, func(ctx context.Context) (*CancelResult, error) {
		lesson, err := s.catalog.GetLesson(ctx, lessonID)
		if err != nil {
			return nil, err
		}

		if !lesson.HasParticipant(userID) {
			return nil, domain.ErrNotBooked
		}

		if !s.catalog.IsWithinCancelWindow(lesson, now) {
			return nil, &domain.CancelTooLateError{HoursUntilLesson: lesson.HoursUntilStart(now)}
		}

		return s.withdraw(ctx, userID, lesson, domain.ActionCancelled, reason, now)
	})
}

// AdminAddParticipant books userID without the booking window. Membership and
// credits are still checked and a credit is consumed.
func (s *BookingService) AdminAddParticipant(ctx context.Context, userID string, lessonID uuid.UUID, now time.Time) (*BookResult, error) {
	return runLocked(s, ctx, "admin_add", userID, lessonID, func(ctx context.Context) (*BookResult, error) {
		acc, err := s.ledger.Account(ctx, userID)
		if err != nil {
			return nil, err
		}

		if err := acc.CheckMembership(now); err != nil {
			return nil, err
		}

		lesson, err := s.catalog.GetLesson(ctx, lessonID)
		if err != nil {
			return nil, err
		}

		if lesson.Status == domain.LessonCancelled {
			return nil, domain.ErrLessonUnavailable
		}

		if lesson.HasParticipant(userID) {
			return nil, domain.ErrAlreadyBooked
		}

		if !acc.CanBook() {
			return nil, domain.ErrInsufficientCredits
		}

		if lesson.IsFull() {
			return nil, domain.ErrLessonFull
		}

		return s.enroll(ctx, userID, lesson, domain.ActionAdminAdded, now)
	})
}

// AdminRemoveParticipant removes userID without the cancellation window or
// membership checks and refunds the credit.
func (s *BookingService) AdminRemoveParticipant(ctx context.Context, userID string, lessonID uuid.UUID, reason string, now time.Time) (*CancelResult, error) {
	if reason == "" {
		reason = defaultAdminRemoveReason
	}

	return runLocked(s, ctx, "admin_remove", userID, lessonID, func(ctx context.Context) (*CancelResult, error) {
		lesson, err := s.catalog.GetLesson(ctx, lessonID)
		if err != nil {
			return nil, err
		}

		if !lesson.HasParticipant(userID) {
			return nil, domain.ErrNotBooked
		}

		return s.withdraw(ctx, userID, lesson, domain.ActionAdminRemoved, reason, now)
	})
}

// enroll consumes a credit and adds the participant. If the add fails the
// credit is refunded before returning.
func (s *BookingService) enroll(ctx context.Context, userID string, lesson *domain.Lesson, action domain.BookingAction, now time.Time) (*BookResult, error) {
	balance, err := s.ledger.Consume(ctx, userID, fmt.Sprintf("%s: lesson %s", action, lesson.ID))
	if err != nil {
		return nil, err
	}

	updated, err := s.catalog.AddParticipant(ctx, lesson, userID)
	if err != nil {
		return nil, s.compensate(ctx, string(action), userID, lesson.ID, err)
	}

	recordID := s.record(ctx, userID, updated, action, now)
	s.notify(ctx, recordID, action, userID, updated, now)

	return &BookResult{
		LessonID:         lesson.ID,
		RecordID:         recordID,
		RemainingCredits: balance,
	}, nil
}

// withdraw removes the participant and refunds. A failed refund does not undo
// the removal; it is logged for reconciliation and flagged on the result.
func (s *BookingService) withdraw(ctx context.Context, userID string, lesson *domain.Lesson, action domain.BookingAction, reason string, now time.Time) (*CancelResult, error) {
	updated, err := s.catalog.RemoveParticipant(ctx, lesson, userID)
	if err != nil {
		return nil, err
	}

	result := &CancelResult{LessonID: lesson.ID}

	rctx, cancel := detached(ctx, s.opts.timeout)
	defer cancel()

	balance, err := s.ledger.Refund(rctx, userID, fmt.Sprintf("%s: lesson %s", action, lesson.ID))
	if err != nil {
		result.RefundFailed = true
		s.opts.metrics.NeedsReconciliation(string(action))
		s.opts.logger.Error("Refund failed after participant removal, needs reconciliation",
			"user_id", userID, "lesson_id", lesson.ID, "action", action, "error", err)
	} else {
		result.RemainingCredits = balance
	}

	result.RecordID = s.closeRecord(ctx, userID, updated, action, reason, now)
	s.notify(ctx, result.RecordID, action, userID, updated, now)

	return result, nil
}

func (s *BookingService) compensate(ctx context.Context, operation, userID string, lessonID uuid.UUID, cause error) error {
	rctx, cancel := detached(ctx, s.opts.timeout)
	defer cancel()

	if _, err := s.ledger.Refund(rctx, userID, fmt.Sprintf("compensation: %s lesson %s", operation, lessonID)); err != nil {
		s.opts.metrics.NeedsReconciliation(operation)
		s.opts.logger.Error("Compensating refund failed, needs reconciliation",
			"user_id", userID, "lesson_id", lessonID, "operation", operation, "cause", cause, "error", err)
		return fmt.Errorf("%w: %w (refund: %v)", domain.ErrCompensationFailed, cause, err)
	}

	s.opts.logger.Warn("Participant add failed, credit refunded",
		"user_id", userID, "lesson_id", lessonID, "operation", operation, "cause", cause)

	return cause
}

func (s *BookingService) record(ctx context.Context, userID string, lesson *domain.Lesson, action domain.BookingAction, now time.Time) uuid.UUID {
	id, err := s.history.Record(ctx, userID, lesson, action, "", now)
	if err != nil {
		s.opts.metrics.AuditFailed(string(action))
		s.opts.logger.Warn("Failed to write booking record", "user_id", userID, "lesson_id", lesson.ID, "action", action, "error", err)
		return uuid.Nil
	}

	return id
}

// closeRecord marks the latest record for the pair as cancelled. If the
// original record was never written a cancelled record is appended instead.
func (s *BookingService) closeRecord(ctx context.Context, userID string, lesson *domain.Lesson, action domain.BookingAction, reason string, now time.Time) uuid.UUID {
	id, err := s.history.UpdateStatus(ctx, userID, lesson.ID, domain.BookingCancelled, action, reason, now)
	if errors.Is(err, domain.ErrRecordNotFound) {
		id, err = s.history.Record(ctx, userID, lesson, action, reason, now)
	}

	if err != nil {
		s.opts.metrics.AuditFailed(string(action))
		s.opts.logger.Warn("Failed to update booking record", "user_id", userID, "lesson_id", lesson.ID, "action", action, "error", err)
		return uuid.Nil
	}

	return id
}

func (s *BookingService) notify(ctx context.Context, recordID uuid.UUID, action domain.BookingAction, userID string, lesson *domain.Lesson, now time.Time) {
	if s.opts.notifier == nil {
		return
	}

	event := domain.BookingEvent{
		ID:          uuid.New(),
		RecordID:    recordID,
		Action:      action,
		UserID:      userID,
		LessonID:    lesson.ID,
		LessonTitle: lesson.Title,
		StartsAt:    lesson.StartsAt,
		OccurredAt:  now,
	}

	if err := s.opts.notifier.Notify(ctx, event); err != nil {
		s.opts.logger.Warn("Failed to publish booking event", "user_id", userID, "lesson_id", lesson.ID, "action", action, "error", err)
	}
}

func (s *BookingService) lockLesson(ctx context.Context, lessonID uuid.UUID) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}

	key := "lesson:" + lessonID.String()

	for {
		token, err := s.locker.Acquire(ctx, key, s.opts.lockTTL)
		if err == nil {
			return func() {
				rctx, cancel := detached(ctx, time.Second)
				defer cancel()

				if err := s.locker.Release(rctx, key, token); err != nil {
					s.opts.logger.Warn("Failed to release lesson lock", "lesson_id", lessonID, "error", err)
				}
			}, nil
		}

		if !errors.Is(err, domain.ErrLockBusy) {
			return nil, external(err)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: waiting for lesson lock: %w", domain.ErrTimeout, ctx.Err())
		case <-time.After(lockRetryInterval):
		}
	}
}

// runLocked wraps fn with the operation timeout, a trace span, the lesson
// lock, logging and metrics.
func runLocked[T any](s *BookingService, ctx context.Context, op, userID string, lessonID uuid.UUID, fn func(context.Context) (T, error)) (T, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, s.opts.timeout)
	defer cancel()

	ctx, span := s.tracer.Start(ctx, "booking."+op, trace.WithAttributes(
		attribute.String("user_id", userID),
		attribute.String("lesson_id", lessonID.String()),
	))
	defer span.End()

	var result T
	unlock, err := s.lockLesson(ctx, lessonID)
	if err == nil {
		result, err = fn(ctx)
		unlock()
	}

	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) && domain.KindOf(err) != domain.KindValidation && !errors.Is(err, domain.ErrTimeout) {
		err = fmt.Errorf("%w: %w", domain.ErrTimeout, err)
	}

	s.opts.metrics.ObserveBooking(op, resultLabel(err), time.Since(start).Seconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logFailure(op, userID, lessonID, err)
		var zero T
		return zero, err
	}

	s.opts.logger.Info("Booking operation succeeded", "operation", op, "user_id", userID, "lesson_id", lessonID)

	return result, nil
}

func (s *BookingService) logFailure(op, userID string, lessonID uuid.UUID, err error) {
	attrs := []any{"operation", op, "user_id", userID, "lesson_id", lessonID, "error", err}

	switch domain.KindOf(err) {
	case domain.KindValidation:
		s.opts.logger.Info("Booking operation rejected", attrs...)
	case domain.KindIntegrity:
		s.opts.logger.Error("Booking operation hit an integrity error", attrs...)
	default:
		s.opts.logger.Warn("Booking operation failed", attrs...)
	}
}

// detached returns a context that survives cancellation of parent, for work
// that must finish even after the operation deadline: compensations and
// lock release.
func detached(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(parent), timeout)
}
