// Package handler exposes the booking core over HTTP.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/srgjo27/studio_booking/internal/core/services"
)

type Services struct {
	Booking *services.BookingService
	Catalog *services.CatalogService
	Ledger  *services.LedgerService
	History *services.HistoryService
}

type Handler struct {
	svc    Services
	logger *slog.Logger
	now    func() time.Time
}

func New(svc Services, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, logger: logger, now: time.Now}
}

// Router mounts every route. gatherer backs /metrics and may be nil.
func (h *Handler) Router(gatherer prometheus.Gatherer, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if requestTimeout > 0 {
		r.Use(middleware.Timeout(requestTimeout))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/lessons", func(r chi.Router) {
		r.Get("/", h.ListLessons)
		r.Get("/{lessonID}", h.GetLesson)
		r.Post("/{lessonID}/bookings", h.Book)
		r.Delete("/{lessonID}/bookings", h.Cancel)
	})

	r.Route("/users/{userID}", func(r chi.Router) {
		r.Get("/credits", h.GetCredits)
		r.Get("/credits/transactions", h.ListTransactions)
		r.Get("/history", h.GetHistory)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Post("/users/{userID}/credits", h.AdminCredits)
		r.Post("/lessons/{lessonID}/participants", h.AdminAddParticipant)
		r.Delete("/lessons/{lessonID}/participants/{userID}", h.AdminRemoveParticipant)
	})

	return r
}
