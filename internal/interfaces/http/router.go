package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/admet-prioritizer/internal/interfaces/http/handlers"
	"github.com/turtacn/admet-prioritizer/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handlers and middleware settings of the route
// tree.  Nil handlers leave their routes unmounted.
type RouterConfig struct {
	PageHandler       *handlers.PageHandler
	PrioritizeHandler *handlers.PrioritizeHandler
	ArtifactHandler   *handlers.ArtifactHandler
	HealthHandler     *handlers.HealthHandler

	CORS    middleware.CORSConfig
	Logging middleware.LoggingConfig

	Logger           logging.Logger
	Metrics          *prometheus.AppMetrics
	MetricsCollector prometheus.MetricsCollector
	MetricsPath      string

	// Debug mounts the pprof profiler under /debug.
	Debug bool
}

// NewRouter constructs the complete route tree.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger, cfg.Logging))
	r.Use(middleware.Metrics(cfg.Metrics))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(chimw.Compress(5, "text/html", "text/csv", "application/json"))

	if cfg.HealthHandler != nil {
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
	}

	if cfg.MetricsCollector != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, cfg.MetricsCollector.Handler())
	}

	if cfg.Debug {
		r.Mount("/debug", chimw.Profiler())
	}

	if h := cfg.PageHandler; h != nil {
		r.Get("/", h.Index)
		r.Post("/analyze", h.Analyze)
	}

	if h := cfg.ArtifactHandler; h != nil {
		r.Route("/runs/{id}", func(run chi.Router) {
			run.Get("/export.csv", h.ExportCSV)
			run.Get("/depictions/{index}.png", h.Depiction)
			run.Get("/charts/{name}", h.Chart)
		})
	}

	r.Route("/api/v1", func(api chi.Router) {
		if h := cfg.PrioritizeHandler; h != nil {
			api.Post("/prioritize", h.Prioritize)
			api.Get("/runs/{id}", h.GetRun)
		}
	})

	return r
}

//Personal.AI order the ending
