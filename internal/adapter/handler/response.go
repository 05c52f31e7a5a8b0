package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/srgjo27/studio_booking/internal/core/domain"
	"github.com/srgjo27/studio_booking/internal/core/services"
)

type errorBody struct {
	Message          string   `json:"message"`
	Kind             string   `json:"kind"`
	HoursUntilLesson *float64 `json:"hours_until_lesson,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, map[string]errorBody{"error": {Message: msg, Kind: kind}})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeMessage(w, http.StatusBadRequest, domain.KindValidation.String(), msg)
}

// writeError maps a service error to a status code. Only validation and
// not-found messages are echoed to the client.
func writeError(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)
	body := errorBody{Message: err.Error(), Kind: kind.String()}

	var tooLate *domain.CancelTooLateError
	if errors.As(err, &tooLate) {
		hours := tooLate.HoursUntilLesson
		body.HoursUntilLesson = &hours
	}

	status := statusFor(err)
	switch {
	case status == http.StatusInternalServerError:
		body.Message = "internal error, please try again"
	case errors.Is(err, domain.ErrLockBusy):
		body.Message = domain.ErrLockBusy.Error()
	case kind == domain.KindTimeout:
		body.Message = "operation timed out, please try again"
	case kind == domain.KindUnavailable:
		body.Message = "service temporarily unavailable, please try again"
	}

	writeJSON(w, status, map[string]errorBody{"error": body})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrCompensationFailed):
		return http.StatusInternalServerError
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrLessonNotFound),
		errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, services.ErrInvalidRange):
		return http.StatusUnprocessableEntity
	}

	switch domain.KindOf(err) {
	case domain.KindValidation:
		return http.StatusConflict
	case domain.KindTimeout:
		return http.StatusGatewayTimeout
	case domain.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	return json.NewDecoder(r.Body).Decode(v)
}
