// Package web exposes the pipeline's artifacts over HTTP: the standardized
// returns dataset, per-currency summaries, the generated report pages, and
// the Prometheus metrics endpoint. The surface is read-only; it never
// triggers a pipeline run.
package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"fxreturns/internal/config"
	"fxreturns/internal/infrastructure"
)

// NewRouter assembles the HTTP routes. metricsHandler serves /metrics and
// may be nil when metrics are disabled.
func NewRouter(paths *config.Paths, logger *slog.Logger, metricsHandler http.Handler) *chi.Mux {
	h := NewHandler(paths, logger)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/healthz", h.Health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/returns", h.Returns)
		r.Get("/summary", h.Summary)
	})
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	// Generated report pages straight off the output directory.
	r.Handle("/reports/*", http.StripPrefix("/reports/",
		http.FileServer(http.Dir(paths.OutputDir))))

	return r
}

// requestLogger attaches a run id to each request context and logs one line
// per request.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := infrastructure.EnsureRunID(r.Context())
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r.WithContext(ctx))

			logger.InfoContext(ctx, "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("duration", time.Since(start)))
		})
	}
}
