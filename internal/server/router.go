package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Routes builds the HTTP handler tree. /health and /metrics are
// unauthenticated; everything under /api/admin requires a bearer token.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.metrics.Middleware())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	r.Post("/api/auth/login", s.handleLogin)

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", s.handleListAccounts)
			r.Post("/", s.handleCreateAccount)
			r.Get("/{id}", s.handleGetAccount)
			r.Put("/{id}", s.handleUpdateAccount)
			r.Delete("/{id}", s.handleDeleteAccount)
		})

		r.Route("/buckets", func(r chi.Router) {
			r.Get("/", s.handleListBuckets)
			r.Post("/", s.handleCreateBucket)
			r.Get("/{id}", s.handleGetBucket)
			r.Put("/{id}", s.handleUpdateBucket)
			r.Delete("/{id}", s.handleDeleteBucket)

			r.Get("/{id}/accounts", s.handleListBucketAccounts)
			r.Post("/{id}/accounts", s.handleAssignAccount)
			r.Delete("/{id}/accounts/{accountId}", s.handleRemoveAccount)
		})

		r.Get("/dashboard/stats", s.handleDashboardStats)
	})

	return otelhttp.NewHandler(r, "curator-api")
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]string{"status": "ok"}, "")
}
