/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the frontend

ROUTE GROUPS:
  /api/auth/*      Manager login
  /api/staff/*     Staff registry (mutations manager-gated)
  /api/days/*      Daily snapshots
  /api/summary/*   Range aggregation
  /api/reports/*   Report tables (manager-gated)

SEE ALSO:
  - handlers.go: Handler implementations
  - auth.go: RequireManager middleware
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		// Auth
		r.Post("/auth/login", h.Login)

		// Staff registry
		r.Route("/staff", func(r chi.Router) {
			r.Get("/", h.ListStaff)

			// Mutations require a manager session
			r.Group(func(r chi.Router) {
				r.Use(h.Auth.RequireManager)
				r.Post("/", h.AddStaff)
				r.Delete("/", h.RemoveStaff)
				r.Put("/{id}/points", h.UpdatePoints)
			})
		})

		// Daily snapshots
		r.Route("/days/{date}", func(r chi.Router) {
			r.Get("/", h.GetDay)
			r.Post("/", h.SaveDay)
			r.Put("/", h.SaveDay) // edit shares the save path
			r.Delete("/", h.DeleteDay)
		})

		// Aggregation
		r.Route("/summary", func(r chi.Router) {
			r.Get("/", h.GetSummary)
			r.Get("/daily", h.GetDailyTotals)
			r.Get("/week", h.GetWeekSummary)
			r.Get("/month", h.GetMonthSummary)
		})

		// Report tables (export is manager-gated)
		r.Route("/reports", func(r chi.Router) {
			r.Use(h.Auth.RequireManager)
			r.Get("/daily", h.GetDailyReport)
			r.Get("/staff", h.GetStaffReport)
		})
	})

	return r
}
