package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/srgjo27/studio_booking/internal/core/domain"
)

type LessonRepository struct {
	db *sql.DB
}

func NewLessonRepository(db *sql.DB) *LessonRepository {
	return &LessonRepository{db: db}
}

const lessonColumns = `id, title, type, category, lesson_kind, trainer_id, starts_at, ends_at,
	duration_minutes, max_participants, participants, status, version`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLesson(row rowScanner) (*domain.Lesson, error) {
	var lesson domain.Lesson
	var category, kind, status string
	var participants pq.StringArray

	err := row.Scan(
		&lesson.ID,
		&lesson.Title,
		&lesson.Type,
		&category,
		&kind,
		&lesson.TrainerID,
		&lesson.StartsAt,
		&lesson.EndsAt,
		&lesson.DurationMinutes,
		&lesson.MaxParticipants,
		&participants,
		&status,
		&lesson.Version,
	)
	if err != nil {
		return nil, err
	}

	lesson.Category = domain.ParseCategory(category)
	lesson.Kind = domain.LessonKind(kind)
	lesson.Status = domain.LessonStatus(status)
	lesson.Participants = []string(participants)

	return &lesson, nil
}

func (r *LessonRepository) GetByID(ctx context.Context, lessonID uuid.UUID) (*domain.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE id = $1`

	lesson, err := scanLesson(r.db.QueryRowContext(ctx, query, lessonID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLessonNotFound
		}

		return nil, fmt.Errorf("get lesson: %w", err)
	}

	return lesson, nil
}

func (r *LessonRepository) ListBetween(ctx context.Context, from, to time.Time) ([]domain.Lesson, error) {
	query := `
	SELECT ` + lessonColumns + `
	FROM lessons
	WHERE starts_at >= $1 AND starts_at < $2
	ORDER BY starts_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}

	defer rows.Close()

	var lessons []domain.Lesson
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, err
		}

		lessons = append(lessons, *lesson)
	}

	return lessons, rows.Err()
}

// UpdateParticipants replaces the participant set only if nobody else wrote
// the lesson since currentVersion was read.
func (r *LessonRepository) UpdateParticipants(ctx context.Context, lessonID uuid.UUID, participants []string, currentVersion int) error {
	query := `
	UPDATE lessons
	SET participants = $1,
		version = version + 1
	WHERE id = $2 AND version = $3
	`

	result, err := r.db.ExecContext(ctx, query, pq.Array(participants), lessonID, currentVersion)
	if err != nil {
		return fmt.Errorf("update participants: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrVersionConflict
	}

	return nil
}
