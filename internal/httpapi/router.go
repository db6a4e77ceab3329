// Package httpapi assembles the HTTP surface: Connect services, health
// and metrics.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bairooha/donordesk/internal/middleware"
)

const readyTimeout = 2 * time.Second

// Mount is a handler served under a path prefix, as returned by the
// service handler constructors.
type Mount struct {
	Path    string
	Handler http.Handler
}

// Options configures the router.
type Options struct {
	Services []Mount

	// Gatherer backs /metrics. Nil uses the default registry.
	Gatherer prometheus.Gatherer

	// Ready reports whether storage is reachable. Nil means always ready.
	Ready func(context.Context) error
}

// NewRouter returns the root handler.
func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(
		chimw.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.RequestLogger,
		middleware.CORS,
	)

	r.Get("/healthz", healthHandler(opts.Ready))

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	for _, m := range opts.Services {
		r.Handle(m.Path+"*", m.Handler)
	}
	return r
}

func healthHandler(ready func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, body := http.StatusOK, map[string]string{"status": "ok"}
		if ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
			defer cancel()
			if err := ready(ctx); err != nil {
				slog.WarnContext(ctx, "Health check failed", "error", err)
				status, body = http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()}
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}
