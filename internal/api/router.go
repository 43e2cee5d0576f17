package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/julianstephens/habitchain/internal/metrics"
	"github.com/julianstephens/habitchain/internal/service"
)

// Options configures the router.
type Options struct {
	// BasePath prefixes the resource routes; empty mounts them at the root
	BasePath       string
	AllowedOrigins []string
	LoginRate      float64
	LoginBurst     int
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Only set it behind a proxy that overwrites those headers.
	TrustProxy bool
	// Metrics enables instrumentation and GET /metrics when set
	Metrics *metrics.Metrics
}

// NewRouter builds the HTTP handler for the habit API.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	h := NewHandler(svc)
	limiter := NewRateLimiter(opts.LoginRate, opts.LoginBurst)

	r := chi.NewRouter()
	if opts.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(RequestID)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Instrument)
	}
	r.Use(NewCORS(opts.AllowedOrigins).Handler)

	r.Get("/healthz", h.HandleHealth)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	routes := func(r chi.Router) {
		r.With(limiter.Handler).Post("/login", h.HandleLogin)

		r.Route("/habits", func(r chi.Router) {
			r.Get("/", h.HandleListHabits)
			r.Post("/", h.HandleCreateHabit)
			r.Patch("/{id}/done", h.HandleMarkDone)
			r.Delete("/{id}", h.HandleDeleteHabit)
		})

		r.Route("/members", func(r chi.Router) {
			r.Get("/", h.HandleListMembers)
			r.Post("/", h.HandleCreateMember)
			r.Delete("/{id}", h.HandleDeleteMember)
		})

		r.Get("/stats", h.HandleStats)
	}

	base := strings.TrimRight(opts.BasePath, "/")
	if base == "" {
		r.Group(routes)
	} else {
		r.Route(base, routes)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}
