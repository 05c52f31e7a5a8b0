package services_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/studio_booking/internal/core/domain"
)

// In-memory repositories used by the flow tests. They honour the same
// contracts as the Postgres and Redis adapters.

type memAccounts struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
	txns     []domain.CreditTransaction
}

func newMemAccounts() *memAccounts {
	return &memAccounts{accounts: map[string]*domain.Account{}}
}

func (m *memAccounts) put(acc domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[acc.UserID] = &acc
}

func (m *memAccounts) balance(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.accounts[userID].RemainingCredits
}

func (m *memAccounts) ledgerSum(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	sum := 0
	for _, t := range m.txns {
		if t.UserID == userID {
			sum += t.Amount
		}
	}
	return sum
}

func (m *memAccounts) GetAccount(_ context.Context, userID string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[userID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	cp := *acc
	return &cp, nil
}

func (m *memAccounts) AdjustCredits(_ context.Context, txn *domain.CreditTransaction) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[txn.UserID]
	if !ok {
		return 0, domain.ErrAccountNotFound
	}
	if acc.RemainingCredits+txn.Amount < 0 {
		return 0, domain.ErrInsufficientCredits
	}
	acc.RemainingCredits += txn.Amount
	txn.BalanceAfter = acc.RemainingCredits
	m.txns = append(m.txns, *txn)
	return acc.RemainingCredits, nil
}

func (m *memAccounts) SetCredits(_ context.Context, txn *domain.CreditTransaction, amount int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[txn.UserID]
	if !ok {
		return 0, domain.ErrAccountNotFound
	}
	txn.Amount = amount - acc.RemainingCredits
	txn.BalanceAfter = amount
	acc.RemainingCredits = amount
	m.txns = append(m.txns, *txn)
	return amount, nil
}

func (m *memAccounts) ListTransactions(_ context.Context, userID string, limit int) ([]domain.CreditTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.CreditTransaction
	for i := len(m.txns) - 1; i >= 0 && len(out) < limit; i-- {
		if m.txns[i].UserID == userID {
			out = append(out, m.txns[i])
		}
	}
	return out, nil
}

type memLessons struct {
	mu      sync.Mutex
	lessons map[uuid.UUID]*domain.Lesson
}

func newMemLessons() *memLessons {
	return &memLessons{lessons: map[uuid.UUID]*domain.Lesson{}}
}

func (m *memLessons) put(l domain.Lesson) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lessons[l.ID] = &l
}

func (m *memLessons) participants(id uuid.UUID) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.lessons[id].Participants...)
}

func (m *memLessons) GetByID(_ context.Context, id uuid.UUID) (*domain.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.lessons[id]
	if !ok {
		return nil, domain.ErrLessonNotFound
	}
	cp := *l
	cp.Participants = append([]string(nil), l.Participants...)
	return &cp, nil
}

func (m *memLessons) ListBetween(_ context.Context, from, to time.Time) ([]domain.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Lesson
	for _, l := range m.lessons {
		if !l.StartsAt.Before(from) && l.StartsAt.Before(to) {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

func (m *memLessons) UpdateParticipants(_ context.Context, id uuid.UUID, participants []string, version int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.lessons[id]
	if !ok || l.Version != version {
		return domain.ErrVersionConflict
	}
	l.Participants = append([]string(nil), participants...)
	l.Version++
	return nil
}

type memRecords struct {
	mu      sync.Mutex
	records []domain.BookingRecord
}

func (m *memRecords) forPair(userID string, lessonID uuid.UUID) []domain.BookingRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.BookingRecord
	for _, r := range m.records {
		if r.UserID == userID && r.LessonID == lessonID {
			out = append(out, r)
		}
	}
	return out
}

func (m *memRecords) Create(_ context.Context, rec *domain.BookingRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, *rec)
	return nil
}

func (m *memRecords) FindLatest(_ context.Context, userID string, lessonID uuid.UUID) (*domain.BookingRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.records) - 1; i >= 0; i-- {
		r := m.records[i]
		if r.UserID == userID && r.LessonID == lessonID {
			return &r, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (m *memRecords) UpdateStatus(_ context.Context, id uuid.UUID, status domain.BookingStatus, action domain.BookingAction, reason *string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].ID == id {
			m.records[i].Status = status
			m.records[i].Action = action
			m.records[i].CancelReason = reason
			m.records[i].ActionDate = at
			return nil
		}
	}
	return domain.ErrRecordNotFound
}

func (m *memRecords) ListByUser(_ context.Context, userID string, limit int) ([]domain.BookingRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.BookingRecord
	for i := len(m.records) - 1; i >= 0 && len(out) < limit; i-- {
		if m.records[i].UserID == userID {
			out = append(out, m.records[i])
		}
	}
	return out, nil
}

type memLocker struct {
	mu    sync.Mutex
	held  map[string]string
	calls int
}

func newMemLocker() *memLocker {
	return &memLocker{held: map[string]string{}}
}

func (m *memLocker) Acquire(_ context.Context, key string, _ time.Duration) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if _, busy := m.held[key]; busy {
		return "", domain.ErrLockBusy
	}
	token := uuid.NewString()
	m.held[key] = token
	return token, nil
}

func (m *memLocker) Release(_ context.Context, key, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held[key] == token {
		delete(m.held, key)
	}
	return nil
}

type memDedup struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newMemDedup() *memDedup {
	return &memDedup{seen: map[string]bool{}}
}

func (m *memDedup) FirstSeen(_ context.Context, key string, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seen[key] {
		return false, nil
	}
	m.seen[key] = true
	return true, nil
}

func (m *memDedup) Forget(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.seen, key)
	return nil
}

// brokenRecords fails every write, as when the audit store is down.
type brokenRecords struct {
	memRecords
}

func (b *brokenRecords) Create(context.Context, *domain.BookingRecord) error {
	return errors.New("audit store unavailable")
}
