package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/studio_booking/internal/core/domain"
)

type BookingRecordRepository struct {
	db *sql.DB
}

func NewBookingRecordRepository(db *sql.DB) *BookingRecordRepository {
	return &BookingRecordRepository{db: db}
}

func (r *BookingRecordRepository) Create(ctx context.Context, record *domain.BookingRecord) error {
	snapshot, err := json.Marshal(record.Lesson)
	if err != nil {
		return fmt.Errorf("encode lesson snapshot: %w", err)
	}

	query := `
	INSERT INTO booking_records (id, user_id, lesson_id, lesson, action, status, booking_date, action_date, cancel_reason)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = r.db.ExecContext(ctx, query,
		record.ID,
		record.UserID,
		record.LessonID,
		snapshot,
		record.Action,
		record.Status,
		record.BookingDate,
		record.ActionDate,
		record.CancelReason,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking record: %w", err)
	}

	return nil
}

const recordColumns = `id, user_id, lesson_id, lesson, action, status, booking_date, action_date, cancel_reason`

func scanRecord(row rowScanner) (*domain.BookingRecord, error) {
	var rec domain.BookingRecord
	var snapshot []byte
	var action, status string
	var reason sql.NullString

	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.LessonID,
		&snapshot,
		&action,
		&status,
		&rec.BookingDate,
		&rec.ActionDate,
		&reason,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(snapshot, &rec.Lesson); err != nil {
		return nil, fmt.Errorf("decode lesson snapshot for record %s: %w", rec.ID, err)
	}

	rec.Action = domain.BookingAction(action)
	rec.Status = domain.BookingStatus(status)

	if reason.Valid {
		rec.CancelReason = &reason.String
	}

	return &rec, nil
}

func (r *BookingRecordRepository) FindLatest(ctx context.Context, userID string, lessonID uuid.UUID) (*domain.BookingRecord, error) {
	query := `
	SELECT ` + recordColumns + `
	FROM booking_records
	WHERE user_id = $1 AND lesson_id = $2
	ORDER BY booking_date DESC
	LIMIT 1
	`

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, userID, lessonID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, fmt.Errorf("find booking record: %w", err)
	}

	return rec, nil
}

func (r *BookingRecordRepository) UpdateStatus(ctx context.Context, recordID uuid.UUID, status domain.BookingStatus, action domain.BookingAction, reason *string, at time.Time) error {
	query := `
	UPDATE booking_records
	SET status = $1, action = $2, cancel_reason = $3, action_date = $4
	WHERE id = $5
	`

	result, err := r.db.ExecContext(ctx, query, status, action, reason, at, recordID)
	if err != nil {
		return fmt.Errorf("update booking record: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (r *BookingRecordRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.BookingRecord, error) {
	query := `
	SELECT ` + recordColumns + `
	FROM booking_records
	WHERE user_id = $1
	ORDER BY booking_date DESC
	LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list booking records: %w", err)
	}

	defer rows.Close()

	var records []domain.BookingRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}

		records = append(records, *rec)
	}

	return records, rows.Err()
}
