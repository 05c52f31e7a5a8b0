package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/srgjo27/studio_booking/internal/core/domain"
)

type creditsResponse struct {
	UserID           string                  `json:"user_id"`
	RemainingCredits int                     `json:"remaining_credits"`
	MembershipStatus domain.MembershipStatus `json:"membership_status"`
	CanBook          bool                    `json:"can_book"`
}

type transactionResponse struct {
	ID           uuid.UUID         `json:"id"`
	Amount       int               `json:"amount"`
	Kind         domain.CreditKind `json:"kind"`
	Reason       string            `json:"reason"`
	BalanceAfter int               `json:"balance_after"`
	CreatedAt    time.Time         `json:"created_at"`
}

type recordResponse struct {
	ID           uuid.UUID             `json:"id"`
	LessonID     uuid.UUID             `json:"lesson_id"`
	Lesson       domain.LessonSnapshot `json:"lesson"`
	Action       domain.BookingAction  `json:"action"`
	Status       domain.BookingStatus  `json:"status"`
	Attended     bool                  `json:"attended"`
	BookingDate  time.Time             `json:"booking_date"`
	ActionDate   time.Time             `json:"action_date"`
	CancelReason *string               `json:"cancel_reason,omitempty"`
}

type historyResponse struct {
	Summary domain.HistorySummary `json:"summary"`
	Records []recordResponse      `json:"records"`
}

type adminCreditsRequest struct {
	Op     string `json:"op"`
	Amount int    `json:"amount"`
	Reason string `json:"reason"`
}

func (h *Handler) GetCredits(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	acc, err := h.svc.Ledger.Account(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, creditsResponse{
		UserID:           acc.UserID,
		RemainingCredits: acc.RemainingCredits,
		MembershipStatus: acc.MembershipStatus,
		CanBook:          acc.CanBook(),
	})
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	txns, err := h.svc.Ledger.Transactions(r.Context(), chi.URLParam(r, "userID"), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]transactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, transactionResponse{
			ID:           t.ID,
			Amount:       t.Amount,
			Kind:         t.Kind,
			Reason:       t.Reason,
			BalanceAfter: t.BalanceAfter,
			CreatedAt:    t.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	userID := chi.URLParam(r, "userID")
	now := h.now()

	records, err := h.svc.History.UserHistory(r.Context(), userID, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	summary, err := h.svc.History.Summary(r.Context(), userID, now)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := historyResponse{Summary: summary, Records: make([]recordResponse, 0, len(records))}
	for i := range records {
		rec := &records[i]
		resp.Records = append(resp.Records, recordResponse{
			ID:           rec.ID,
			LessonID:     rec.LessonID,
			Lesson:       rec.Lesson,
			Action:       rec.Action,
			Status:       rec.Status,
			Attended:     rec.Attended(now),
			BookingDate:  rec.BookingDate,
			ActionDate:   rec.ActionDate,
			CancelReason: rec.CancelReason,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) AdminCredits(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req adminCreditsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid json body")
		return
	}

	var (
		balance int
		err     error
	)
	switch strings.ToLower(req.Op) {
	case "add":
		balance, err = h.svc.Ledger.Add(r.Context(), userID, req.Amount, req.Reason)
	case "set":
		balance, err = h.svc.Ledger.SetBalance(r.Context(), userID, req.Amount, req.Reason)
	default:
		writeBadRequest(w, `op must be "add" or "set"`)
		return
	}

	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user_id": userID, "remaining_credits": balance})
}

func parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		writeBadRequest(w, "invalid limit")
		return 0, false
	}

	return limit, true
}
