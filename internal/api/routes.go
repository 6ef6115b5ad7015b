package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/moodjournal/mood-api/internal/pkg/httputil"
)

// SetupRoutes configures all API routes.
func SetupRoutes(h *Handlers, hc *HealthChecker, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "Accept-Language"},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		httputil.OK(w, map[string]string{"message": "Mood journal API is running"})
	})

	if hc != nil {
		r.Get("/health", hc.HandleHealth)
		r.Get("/health/live", hc.HandleLiveness)
		r.Get("/health/ready", hc.HandleReadiness)
	}

	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes mounts the journal, summary and sobriety endpoints.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Route("/ai", func(r chi.Router) {
		r.Post("/weekly_summary/{user_id}", h.HandleWeeklySummary)
		r.Get("/summary/{user_id}", h.HandleSummaryQuery)
		r.Post("/analyze_mood", h.HandleAnalyzeMood)
	})

	r.Route("/entries", func(r chi.Router) {
		r.Post("/{user_id}", h.HandleCreateEntry)
		r.Get("/{user_id}", h.HandleListEntries)
	})

	r.Route("/sobriety/clocks", func(r chi.Router) {
		r.Post("/", h.HandleCreateClock)
		r.Get("/{user_id}", h.HandleListClocks)
		r.Delete("/{clock_id}", h.HandleDeleteClock)
		r.Put("/{clock_id}/reset", h.HandleResetClock)
	})
}
