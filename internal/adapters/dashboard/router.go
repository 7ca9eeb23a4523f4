package dashboard

import (
	"expvar"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"districtportal/internal/core"
)

// RouterConfig wires the optional pieces of the HTTP surface.
type RouterConfig struct {
	Logger   *slog.Logger
	Registry *prometheus.Registry
}

// NewRouter builds the full dashboard HTTP surface: API routes, /metrics,
// /debug/vars and /health/live.
func NewRouter(svc *core.Service, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	reg := cfg.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	r := chi.NewRouter()
	r.Use(NewHTTPMetrics(reg).Middleware)
	r.Use(RequestLogger(logger))

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Handle("/debug/vars", expvar.Handler())

	NewHandler(svc, logger).Mount(r)
	return r
}
