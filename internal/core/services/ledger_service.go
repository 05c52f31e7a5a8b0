package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/srgjo27/studio_booking/internal/core/domain"
	"github.com/srgjo27/studio_booking/internal/core/ports"
)

// LedgerService owns every change to a user's remaining credits. Each
// change is written together with its CreditTransaction by the repository.
type LedgerService struct {
	accounts ports.AccountRepository
	opts     options
}

func NewLedgerService(accounts ports.AccountRepository, opts ...Option) *LedgerService {
	return &LedgerService{
		accounts: accounts,
		opts:     buildOptions(opts),
	}
}

func (s *LedgerService) Account(ctx context.Context, userID string) (*domain.Account, error) {
	acc, err := s.accounts.GetAccount(ctx, userID)
	if err != nil {
		return nil, external(err)
	}

	return acc, nil
}

func (s *LedgerService) Balance(ctx context.Context, userID string) (int, error) {
	acc, err := s.Account(ctx, userID)
	if err != nil {
		return 0, err
	}

	return acc.RemainingCredits, nil
}

func (s *LedgerService) CanBook(ctx context.Context, userID string) (bool, error) {
	balance, err := s.Balance(ctx, userID)
	if err != nil {
		return false, err
	}

	return balance > 0, nil
}

// Consume takes one credit. A zero balance fails with ErrInsufficientCredits
// and nothing is written.
func (s *LedgerService) Consume(ctx context.Context, userID, reason string) (int, error) {
	return s.adjust(ctx, userID, -1, domain.CreditConsume, reason)
}

// Refund returns one credit. It has no upper bound.
func (s *LedgerService) Refund(ctx context.Context, userID, reason string) (int, error) {
	return s.adjust(ctx, userID, 1, domain.CreditRefund, reason)
}

func (s *LedgerService) Add(ctx context.Context, userID string, amount int, reason string) (int, error) {
	if amount <= 0 {
		s.opts.metrics.ObserveCredit(string(domain.CreditAdd), resultLabel(domain.ErrInvalidAmount))
		return 0, domain.ErrInvalidAmount
	}

	return s.adjust(ctx, userID, amount, domain.CreditAdd, reason)
}

func (s *LedgerService) SetBalance(ctx context.Context, userID string, amount int, reason string) (int, error) {
	if amount < 0 {
		s.opts.metrics.ObserveCredit(string(domain.CreditSet), resultLabel(domain.ErrInvalidAmount))
		return 0, domain.ErrInvalidAmount
	}

	txn := &domain.CreditTransaction{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      domain.CreditSet,
		Reason:    reason,
		CreatedAt: s.opts.now(),
	}

	balance, err := s.accounts.SetCredits(ctx, txn, amount)
	err = external(err)
	s.opts.metrics.ObserveCredit(string(domain.CreditSet), resultLabel(err))
	if err != nil {
		s.opts.logger.Warn("Failed to set credits", "user_id", userID, "amount", amount, "error", err)
		return 0, err
	}

	s.opts.logger.Info("Credits set", "user_id", userID, "balance", balance, "delta", txn.Amount, "reason", reason)

	return balance, nil
}

func (s *LedgerService) Transactions(ctx context.Context, userID string, limit int) ([]domain.CreditTransaction, error) {
	if limit <= 0 {
		limit = 50
	}

	txns, err := s.accounts.ListTransactions(ctx, userID, limit)
	if err != nil {
		return nil, external(err)
	}

	return txns, nil
}

func (s *LedgerService) adjust(ctx context.Context, userID string, delta int, kind domain.CreditKind, reason string) (int, error) {
	txn := &domain.CreditTransaction{
		ID:        uuid.New(),
		UserID:    userID,
		Amount:    delta,
		Kind:      kind,
		Reason:    reason,
		CreatedAt: s.opts.now(),
	}

	balance, err := s.accounts.AdjustCredits(ctx, txn)
	err = external(err)
	s.opts.metrics.ObserveCredit(string(kind), resultLabel(err))
	if err != nil {
		s.opts.logger.Info("Credit change rejected", "user_id", userID, "kind", kind, "error", err)
		return 0, err
	}

	s.opts.logger.Info("Credits changed", "user_id", userID, "kind", kind, "delta", delta, "balance", balance, "reason", reason)

	return balance, nil
}
