package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"

	"github.com/iac-studio/converge/internal/api/handlers"
	mw "github.com/iac-studio/converge/internal/api/middleware"
)

type Dependencies struct {
	HMACSecret        []byte
	RateLimit         float64
	RateBurst         int
	Health            *handlers.HealthHandler
	ExecutionsHandler *handlers.ExecutionsHandler
	Metrics           http.Handler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	// Built-in middleware
	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(chimid.Compress(5))

	r.Get("/healthz", dep.Health.Liveness)
	r.Get("/readyz", dep.Health.Readiness)
	if dep.Metrics != nil {
		r.Handle("/metrics", dep.Metrics)
	}

	r.Route("/api/v1", func(api chi.Router) {
		if dep.RateLimit > 0 {
			api.Use(mw.NewRateLimiter(dep.RateLimit, max(dep.RateBurst, 1)).Handler)
		}
		api.Use(mw.Auth(dep.HMACSecret))

		api.Route("/executions", func(er chi.Router) {
			er.Post("/", dep.ExecutionsHandler.Create)
			er.Get("/{id}", dep.ExecutionsHandler.Get)
		})
		api.Get("/environments/{environmentID}/executions", dep.ExecutionsHandler.ListByEnvironment)
	})

	return r
}
