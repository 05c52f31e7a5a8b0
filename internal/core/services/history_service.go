package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/studio_booking/internal/core/domain"
	"github.com/srgjo27/studio_booking/internal/core/ports"
)

const summaryScanLimit = 1000

// HistoryService keeps one booking record per booking lifecycle. It is an
// audit trail: nothing in the booking engine reads it to make decisions.
type HistoryService struct {
	records ports.BookingRecordRepository
	opts    options
}

func NewHistoryService(records ports.BookingRecordRepository, opts ...Option) *HistoryService {
	return &HistoryService{
		records: records,
		opts:    buildOptions(opts),
	}
}

func statusFor(action domain.BookingAction) domain.BookingStatus {
	switch action {
	case domain.ActionCancelled, domain.ActionAdminRemoved:
		return domain.BookingCancelled
	default:
		return domain.BookingBooked
	}
}

// Record appends a record for action. reason is stored as the cancel reason
// when non-empty.
func (s *HistoryService) Record(ctx context.Context, userID string, lesson *domain.Lesson, action domain.BookingAction, reason string, now time.Time) (uuid.UUID, error) {
	rec := &domain.BookingRecord{
		ID:          uuid.New(),
		UserID:      userID,
		LessonID:    lesson.ID,
		Lesson:      lesson.Snapshot(),
		Action:      action,
		Status:      statusFor(action),
		BookingDate: now,
		ActionDate:  now,
	}
	if reason != "" {
		rec.CancelReason = &reason
	}

	if err := s.records.Create(ctx, rec); err != nil {
		return uuid.Nil, external(err)
	}

	return rec.ID, nil
}

// UpdateStatus rewrites the latest record for (userID, lessonID) in place.
func (s *HistoryService) UpdateStatus(ctx context.Context, userID string, lessonID uuid.UUID, status domain.BookingStatus, action domain.BookingAction, reason string, now time.Time) (uuid.UUID, error) {
	rec, err := s.records.FindLatest(ctx, userID, lessonID)
	if err != nil {
		return uuid.Nil, external(err)
	}

	var reasonPtr *string
	if reason != "" {
		reasonPtr = &reason
	}

	if err := s.records.UpdateStatus(ctx, rec.ID, status, action, reasonPtr, now); err != nil {
		return uuid.Nil, external(err)
	}

	return rec.ID, nil
}

func (s *HistoryService) UserHistory(ctx context.Context, userID string, limit int) ([]domain.BookingRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	records, err := s.records.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, external(err)
	}

	return records, nil
}

// Summary counts upcoming, attended and cancelled bookings. Attendance is
// derived from the lesson end time in the snapshot.
func (s *HistoryService) Summary(ctx context.Context, userID string, now time.Time) (domain.HistorySummary, error) {
	records, err := s.UserHistory(ctx, userID, summaryScanLimit)
	if err != nil {
		return domain.HistorySummary{}, err
	}

	var sum domain.HistorySummary
	for i := range records {
		rec := &records[i]
		switch {
		case rec.Status == domain.BookingCancelled:
			sum.Cancelled++
		case rec.Attended(now):
			sum.Attended++
		default:
			sum.Upcoming++
		}
	}

	return sum, nil
}
