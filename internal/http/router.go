package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/salesdash/internal/http/auth"
	"github.com/MrJamesThe3rd/salesdash/internal/http/export"
	"github.com/MrJamesThe3rd/salesdash/internal/http/report"
	"github.com/MrJamesThe3rd/salesdash/internal/http/seed"
	"github.com/MrJamesThe3rd/salesdash/internal/http/web"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Options struct {
	AllowedOrigins []string
	Timeout        time.Duration
	JWTSecret      string
}

func New(
	opts Options,
	db Pinger,
	reportV1 *report.Handler,
	seedV1 *seed.Handler,
	exportV1 *export.Handler,
	dashboardUI *web.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}

		w.Write([]byte("ok"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			MaxAge:         300,
		}))

		r.Group(reportV1.Routes)
		r.Route("/export", exportV1.Routes)

		r.Route("/seed", func(r chi.Router) {
			r.Use(auth.RequireToken(opts.JWTSecret))
			seedV1.Routes(r)
		})
	})

	router.Group(dashboardUI.Routes)

	return router
}
