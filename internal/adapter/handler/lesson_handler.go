package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/srgjo27/studio_booking/internal/core/domain"
)

const defaultListWindow = 7 * 24 * time.Hour

type lessonResponse struct {
	ID              uuid.UUID                   `json:"id"`
	Title           string                      `json:"title"`
	Type            string                      `json:"type"`
	Category        domain.LessonCategory       `json:"category"`
	Presentation    domain.CategoryPresentation `json:"presentation"`
	Kind            domain.LessonKind           `json:"kind"`
	TrainerID       string                      `json:"trainer_id"`
	StartsAt        time.Time                   `json:"starts_at"`
	EndsAt          time.Time                   `json:"ends_at"`
	DurationMinutes int                         `json:"duration_minutes"`
	Capacity        int                         `json:"capacity"`
	Participants    []string                    `json:"participants"`
	SpotsLeft       int                         `json:"spots_left"`
	Status          domain.LessonStatus         `json:"status"`
}

func toLessonResponse(l *domain.Lesson, now time.Time) lessonResponse {
	participants := l.Participants
	if participants == nil {
		participants = []string{}
	}

	spots := l.Capacity() - len(participants)
	if spots < 0 {
		spots = 0
	}

	return lessonResponse{
		ID:              l.ID,
		Title:           l.Title,
		Type:            l.Type,
		Category:        l.Category,
		Presentation:    l.Category.Presentation(),
		Kind:            l.Kind,
		TrainerID:       l.TrainerID,
		StartsAt:        l.StartsAt,
		EndsAt:          l.EndsAt,
		DurationMinutes: l.DurationMinutes,
		Capacity:        l.Capacity(),
		Participants:    participants,
		SpotsLeft:       spots,
		Status:          l.EffectiveStatus(now),
	}
}

// ListLessons returns lessons starting in [from, to). Both bounds are
// RFC 3339; from defaults to now and to to one week after from.
func (h *Handler) ListLessons(w http.ResponseWriter, r *http.Request) {
	now := h.now()

	from, err := parseTime(r.URL.Query().Get("from"), now)
	if err != nil {
		writeBadRequest(w, "invalid from: expected RFC 3339 timestamp")
		return
	}

	to, err := parseTime(r.URL.Query().Get("to"), from.Add(defaultListWindow))
	if err != nil {
		writeBadRequest(w, "invalid to: expected RFC 3339 timestamp")
		return
	}

	lessons, err := h.svc.Catalog.ListLessons(r.Context(), from, to)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]lessonResponse, 0, len(lessons))
	for i := range lessons {
		out = append(out, toLessonResponse(&lessons[i], now))
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) GetLesson(w http.ResponseWriter, r *http.Request) {
	lessonID, err := uuid.Parse(chi.URLParam(r, "lessonID"))
	if err != nil {
		writeBadRequest(w, "invalid lesson id")
		return
	}

	lesson, err := h.svc.Catalog.GetLesson(r.Context(), lessonID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toLessonResponse(lesson, h.now()))
}

func parseTime(raw string, fallback time.Time) (time.Time, error) {
	if raw == "" {
		return fallback, nil
	}
	return time.Parse(time.RFC3339, raw)
}
