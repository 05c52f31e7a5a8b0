package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/srgjo27/studio_booking/internal/core/domain"
)

// external classifies an error coming back from a repository or adapter.
// Known domain errors pass through untouched.
func external(err error) error {
	switch {
	case err == nil:
		return nil
	case domain.KindOf(err) != domain.KindUnknown:
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", domain.ErrTimeout, err)
	default:
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	return domain.KindOf(err).String()
}
