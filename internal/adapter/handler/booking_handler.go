package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type bookingRequest struct {
	UserID string `json:"user_id"`
	Reason string `json:"reason,omitempty"`
}

func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	lessonID, req, ok := h.bookingInput(w, r)
	if !ok {
		return
	}

	resp, err := h.svc.Booking.Book(r.Context(), req.UserID, lessonID, h.now())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	lessonID, req, ok := h.bookingInput(w, r)
	if !ok {
		return
	}

	resp, err := h.svc.Booking.Cancel(r.Context(), req.UserID, lessonID, req.Reason, h.now())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) AdminAddParticipant(w http.ResponseWriter, r *http.Request) {
	lessonID, req, ok := h.bookingInput(w, r)
	if !ok {
		return
	}

	resp, err := h.svc.Booking.AdminAddParticipant(r.Context(), req.UserID, lessonID, h.now())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) AdminRemoveParticipant(w http.ResponseWriter, r *http.Request) {
	lessonID, err := uuid.Parse(chi.URLParam(r, "lessonID"))
	if err != nil {
		writeBadRequest(w, "invalid lesson id")
		return
	}

	userID := strings.TrimSpace(chi.URLParam(r, "userID"))
	reason := r.URL.Query().Get("reason")

	resp, err := h.svc.Booking.AdminRemoveParticipant(r.Context(), userID, lessonID, reason, h.now())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) bookingInput(w http.ResponseWriter, r *http.Request) (uuid.UUID, bookingRequest, bool) {
	var req bookingRequest

	lessonID, err := uuid.Parse(chi.URLParam(r, "lessonID"))
	if err != nil {
		writeBadRequest(w, "invalid lesson id")
		return uuid.Nil, req, false
	}

	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid json body")
		return uuid.Nil, req, false
	}

	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		writeBadRequest(w, "user_id is required")
		return uuid.Nil, req, false
	}

	return lessonID, req, true
}
