package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"timelinebot/config"
	"timelinebot/metrics"
)

// NewRouter builds the relay's HTTP handler. /metrics is mounted only when
// m is non-nil and metrics are enabled in cfg.
func NewRouter(cfg *config.Config, gen Generator, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))
	r.Use(middleware.RequestID, requestLogger, middleware.Recoverer)

	r.Method(http.MethodPost, "/chat", NewChatHandler(gen, m, cfg.StrictUpstreamErrors))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if m != nil && cfg.MetricsEnabled {
		r.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
	}

	return r
}
