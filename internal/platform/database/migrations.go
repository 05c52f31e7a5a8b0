package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrations returns the schema statements, one statement per string.
func Migrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS user_accounts (
			user_id               TEXT PRIMARY KEY,
			remaining_credits     INTEGER CHECK (remaining_credits >= 0),
			membership_status     TEXT NOT NULL DEFAULT 'active',
			membership_start_date TIMESTAMPTZ,
			updated_at            TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS credit_transactions (
			id            UUID PRIMARY KEY,
			user_id       TEXT NOT NULL REFERENCES user_accounts(user_id),
			amount        INTEGER NOT NULL,
			kind          TEXT NOT NULL,
			reason        TEXT NOT NULL DEFAULT '',
			balance_after INTEGER NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_credit_transactions_user ON credit_transactions(user_id, created_at DESC)`,

		`CREATE TABLE IF NOT EXISTS lessons (
			id               UUID PRIMARY KEY,
			title            TEXT NOT NULL,
			type             TEXT NOT NULL DEFAULT '',
			category         TEXT NOT NULL DEFAULT 'other',
			lesson_kind      TEXT NOT NULL DEFAULT 'group',
			trainer_id       TEXT NOT NULL DEFAULT '',
			starts_at        TIMESTAMPTZ NOT NULL,
			ends_at          TIMESTAMPTZ NOT NULL,
			duration_minutes INTEGER NOT NULL DEFAULT 0,
			max_participants INTEGER NOT NULL CHECK (max_participants >= 0),
			participants     TEXT[] NOT NULL DEFAULT '{}',
			status           TEXT NOT NULL DEFAULT 'active',
			version          INTEGER NOT NULL DEFAULT 0,
			CHECK (cardinality(participants) <= GREATEST(max_participants, 1))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_lessons_starts_at ON lessons(starts_at)`,

		`CREATE TABLE IF NOT EXISTS booking_records (
			id            UUID PRIMARY KEY,
			user_id       TEXT NOT NULL,
			lesson_id     UUID NOT NULL,
			lesson        JSONB NOT NULL,
			action        TEXT NOT NULL,
			status        TEXT NOT NULL,
			booking_date  TIMESTAMPTZ NOT NULL,
			action_date   TIMESTAMPTZ NOT NULL,
			cancel_reason TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_booking_records_pair ON booking_records(user_id, lesson_id, booking_date DESC)`,
	}
}

// Migrate applies every statement from Migrations in a single transaction.
func Migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	for i, stmt := range Migrations() {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}

	return tx.Commit()
}
