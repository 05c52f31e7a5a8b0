package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/srgjo27/studio_booking/internal/core/domain"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) GetAccount(ctx context.Context, userID string) (*domain.Account, error) {
	query := `
	SELECT user_id, remaining_credits, membership_status, membership_start_date, updated_at
	FROM user_accounts
	WHERE user_id = $1
	`

	var acc domain.Account
	var credits sql.NullInt64
	var status string
	var startDate sql.NullTime

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&acc.UserID,
		&credits,
		&status,
		&startDate,
		&acc.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, fmt.Errorf("get account: %w", err)
	}

	// A missing credits value means the account was never topped up.
	if credits.Valid {
		acc.RemainingCredits = int(credits.Int64)
	}

	acc.MembershipStatus = domain.MembershipStatus(status)

	if startDate.Valid {
		acc.MembershipStartDate = &startDate.Time
	}

	return &acc, nil
}

func (r *AccountRepository) AdjustCredits(ctx context.Context, txn *domain.CreditTransaction) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin adjust credits: %w", err)
	}

	defer tx.Rollback()

	query := `
	UPDATE user_accounts
	SET remaining_credits = COALESCE(remaining_credits, 0) + $1,
		updated_at = $2
	WHERE user_id = $3 AND COALESCE(remaining_credits, 0) + $1 >= 0
	RETURNING remaining_credits
	`

	var balance int
	err = tx.QueryRowContext(ctx, query, txn.Amount, txn.CreatedAt, txn.UserID).Scan(&balance)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("update balance: %w", err)
		}

		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM user_accounts WHERE user_id = $1)`, txn.UserID).Scan(&exists); err != nil {
			return 0, fmt.Errorf("check account: %w", err)
		}

		if !exists {
			return 0, domain.ErrAccountNotFound
		}

		return 0, domain.ErrInsufficientCredits
	}

	txn.BalanceAfter = balance

	if err := insertTransaction(ctx, tx, txn); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return balance, nil
}

func (r *AccountRepository) SetCredits(ctx context.Context, txn *domain.CreditTransaction, amount int) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin set credits: %w", err)
	}

	defer tx.Rollback()

	var previous int
	err = tx.QueryRowContext(ctx, `SELECT COALESCE(remaining_credits, 0) FROM user_accounts WHERE user_id = $1 FOR UPDATE`, txn.UserID).Scan(&previous)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrAccountNotFound
		}

		return 0, fmt.Errorf("lock account: %w", err)
	}

	_, err = tx.ExecContext(ctx, `UPDATE user_accounts SET remaining_credits = $1, updated_at = $2 WHERE user_id = $3`, amount, txn.CreatedAt, txn.UserID)
	if err != nil {
		return 0, fmt.Errorf("set balance: %w", err)
	}

	txn.Amount = amount - previous
	txn.BalanceAfter = amount

	if err := insertTransaction(ctx, tx, txn); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return amount, nil
}

func insertTransaction(ctx context.Context, tx *sql.Tx, txn *domain.CreditTransaction) error {
	query := `
	INSERT INTO credit_transactions (id, user_id, amount, kind, reason, balance_after, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := tx.ExecContext(ctx, query, txn.ID, txn.UserID, txn.Amount, txn.Kind, txn.Reason, txn.BalanceAfter, txn.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert credit transaction: %w", err)
	}

	return nil
}

func (r *AccountRepository) ListTransactions(ctx context.Context, userID string, limit int) ([]domain.CreditTransaction, error) {
	query := `
	SELECT id, user_id, amount, kind, reason, balance_after, created_at
	FROM credit_transactions
	WHERE user_id = $1
	ORDER BY created_at DESC
	LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	defer rows.Close()

	var txns []domain.CreditTransaction
	for rows.Next() {
		var txn domain.CreditTransaction
		var kind string
		if err := rows.Scan(
			&txn.ID,
			&txn.UserID,
			&txn.Amount,
			&kind,
			&txn.Reason,
			&txn.BalanceAfter,
			&txn.CreatedAt,
		); err != nil {
			return nil, err
		}

		txn.Kind = domain.CreditKind(kind)
		txns = append(txns, txn)
	}

	return txns, rows.Err()
}
