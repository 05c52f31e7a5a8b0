package domain

import (
	"time"

	"github.com/google/uuid"
)

type CreditKind string

const (
	CreditAdd     CreditKind = "add"
	CreditConsume CreditKind = "consume"
	CreditRefund  CreditKind = "refund"
	CreditSet     CreditKind = "set"
)

// CreditTransaction is one append-only line of the credit log. Amount is the
// signed change applied to the balance, so summing a user's transactions
// reconciles with RemainingCredits.
type CreditTransaction struct {
	ID           uuid.UUID
	UserID       string
	Amount       int
	Kind         CreditKind
	Reason       string
	BalanceAfter int
	CreatedAt    time.Time
}
