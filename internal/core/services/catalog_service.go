package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/studio_booking/internal/core/domain"
	"github.com/srgjo27/studio_booking/internal/core/ports"
)

var ErrInvalidRange = errors.New("invalid range: to must be after from")

// CatalogService is the read side of the lesson schedule plus the only path
// that writes a lesson's participant set.
type CatalogService struct {
	lessons ports.LessonRepository
	opts    options
}

func NewCatalogService(lessons ports.LessonRepository, opts ...Option) *CatalogService {
	return &CatalogService{
		lessons: lessons,
		opts:    buildOptions(opts),
	}
}

func (s *CatalogService) GetLesson(ctx context.Context, lessonID uuid.UUID) (*domain.Lesson, error) {
	lesson, err := s.lessons.GetByID(ctx, lessonID)
	if err != nil {
		return nil, external(err)
	}

	return lesson, nil
}

func (s *CatalogService) ListLessons(ctx context.Context, from, to time.Time) ([]domain.Lesson, error) {
	if !to.After(from) {
		return nil, ErrInvalidRange
	}

	lessons, err := s.lessons.ListBetween(ctx, from, to)
	if err != nil {
		return nil, external(err)
	}

	return lessons, nil
}

func (s *CatalogService) IsWithinBookingWindow(lesson *domain.Lesson, now time.Time) bool {
	return lesson.IsWithinBookingWindow(now, s.opts.policy.BookingCutoff)
}

func (s *CatalogService) IsWithinCancelWindow(lesson *domain.Lesson, now time.Time) bool {
	return lesson.IsWithinCancelWindow(now, s.opts.policy.CancelCutoff)
}

// AddParticipant persists lesson with userID added and returns the updated
// copy. The write is conditional on lesson.Version.
func (s *CatalogService) AddParticipant(ctx context.Context, lesson *domain.Lesson, userID string) (*domain.Lesson, error) {
	participants, err := lesson.WithParticipant(userID)
	if err != nil {
		return nil, err
	}

	return s.saveParticipants(ctx, lesson, participants)
}

func (s *CatalogService) RemoveParticipant(ctx context.Context, lesson *domain.Lesson, userID string) (*domain.Lesson, error) {
	participants, err := lesson.WithoutParticipant(userID)
	if err != nil {
		return nil, err
	}

	return s.saveParticipants(ctx, lesson, participants)
}

func (s *CatalogService) saveParticipants(ctx context.Context, lesson *domain.Lesson, participants []string) (*domain.Lesson, error) {
	if err := s.lessons.UpdateParticipants(ctx, lesson.ID, participants, lesson.Version); err != nil {
		return nil, external(err)
	}

	updated := *lesson
	updated.Participants = participants
	updated.Version++

	return &updated, nil
}
