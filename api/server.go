/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Logger:     Request logging
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. CORS:       Cross-origin requests for the frontend

ROUTE GROUPS:
  /api/breakdown        Stateless pricing
  /api/entries/*        Daily entries
  /api/summary/*        Monthly and yearly summaries
  /api/holidays/*       Holiday calendar
  /api/settings/*       Active settings and revisions
  /api/net/*            Net income estimate and payslip history
  /api/scenarios/*      Demo scenarios

SECURITY NOTE:
  No authentication middleware. The service is meant to run for a single
  worker on localhost or behind an authenticating proxy.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// DefaultAllowedOrigins are the dev frontend origins.
var DefaultAllowedOrigins = []string{"http://localhost:5173", "http://localhost:8080"}

// NewRouter creates a new router with all routes configured. An empty
// allowedOrigins uses DefaultAllowedOrigins.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	if len(allowedOrigins) == 0 {
		allowedOrigins = DefaultAllowedOrigins
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/breakdown", h.CalculateBreakdown)

		// Entry routes
		r.Route("/entries", func(r chi.Router) {
			r.Get("/", h.ListEntries)
			r.Get("/{date}", h.GetEntry)
			r.Put("/{date}", h.SaveEntry)
			r.Delete("/{date}", h.DeleteEntry)
		})

		// Summary routes
		r.Route("/summary", func(r chi.Router) {
			r.Get("/{year}", h.GetYearlySummary)
			r.Get("/{year}/{month}", h.GetMonthlySummary)
		})

		r.Get("/holidays/{year}", h.ListHolidays)

		// Settings routes
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", h.GetSettings)
			r.Put("/", h.UpdateSettings)
			r.Get("/revisions", h.ListRevisions)
		})

		// Net income routes
		r.Route("/net", func(r chi.Router) {
			r.Post("/estimate", h.EstimateNet)
			r.Get("/history", h.ListNetHistory)
			r.Post("/history", h.RecordNet)
		})

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Post("/load", h.LoadScenario)
			r.Post("/reset", h.ResetDatabase)
		})
	})

	return r
}
