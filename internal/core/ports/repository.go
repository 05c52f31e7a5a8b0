package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/studio_booking/internal/core/domain"
)

type AccountRepository interface {
	GetAccount(ctx context.Context, userID string) (*domain.Account, error)
	// AdjustCredits applies txn.Amount to the balance and appends txn to the
	// credit log in one transaction. It fails with ErrInsufficientCredits,
	// leaving state untouched, if the balance would go negative.
	AdjustCredits(ctx context.Context, txn *domain.CreditTransaction) (int, error)
	// SetCredits overwrites the balance and logs the delta as a set transaction.
	SetCredits(ctx context.Context, txn *domain.CreditTransaction, amount int) (int, error)
	ListTransactions(ctx context.Context, userID string, limit int) ([]domain.CreditTransaction, error)
}

type LessonRepository interface {
	GetByID(ctx context.Context, lessonID uuid.UUID) (*domain.Lesson, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]domain.Lesson, error)
	UpdateParticipants(ctx context.Context, lessonID uuid.UUID, participants []string, currentVersion int) error
}

type BookingRecordRepository interface {
	Create(ctx context.Context, record *domain.BookingRecord) error
	FindLatest(ctx context.Context, userID string, lessonID uuid.UUID) (*domain.BookingRecord, error)
	UpdateStatus(ctx context.Context, recordID uuid.UUID, status domain.BookingStatus, action domain.BookingAction, reason *string, at time.Time) error
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.BookingRecord, error)
}

type LessonLocker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (string, error)
	Release(ctx context.Context, key string, token string) error
}

type EventPublisher interface {
	PublishJSON(ctx context.Context, routingKey string, v any) error
}

type Deduplicator interface {
	// FirstSeen marks key for ttl and reports whether this call was the first.
	FirstSeen(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Forget clears key so a later attempt is treated as first again.
	Forget(ctx context.Context, key string) error
}
