package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/petedur/BPD-Tracker/internal/config"
	"github.com/petedur/BPD-Tracker/internal/journal"
	"github.com/petedur/BPD-Tracker/internal/report"
)

func NewRouter(cfg *config.Config, j *journal.Journal, composer *report.Composer) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware)

	handlers := NewHandlers(cfg, j, composer)
	limiter := NewRateLimiter(60, time.Minute)

	// Public endpoints
	r.Get("/health", handlers.Health)

	// API v1 routes (keyed per journal)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(KeyMiddleware)
		r.Use(RateLimitMiddleware(limiter))

		r.Group(func(r chi.Router) {
			r.Use(JSONContentType)

			r.Post("/entries", handlers.CreateEntry)
			r.Get("/entries", handlers.ListEntries)
			r.Delete("/entries", handlers.ClearEntries)
			r.Get("/summary", handlers.Summary)
		})

		// plain-text download, keeps its own content type
		r.Get("/report", handlers.Report)
	})

	return r
}
