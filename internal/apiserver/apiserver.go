// Package apiserver runs the interactive web front end and the JSON API.
package apiserver

import (
	"context"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/turtacn/admet-prioritizer/internal/bootstrap"
	"github.com/turtacn/admet-prioritizer/internal/config"
	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/logging"
	httpserver "github.com/turtacn/admet-prioritizer/internal/interfaces/http"
	"github.com/turtacn/admet-prioritizer/internal/interfaces/http/handlers"
	"github.com/turtacn/admet-prioritizer/internal/interfaces/http/middleware"
)

// Options configures Run.
type Options struct {
	// ConfigPath is watched for pipeline and log level changes when set.
	ConfigPath string
	Version    string
}

// NewHandler builds the route tree over app.
func NewHandler(app *bootstrap.App, version string) http.Handler {
	cfg := app.Config
	maxUpload := cfg.Server.MaxUploadSize
	options := handlers.OptionsSource(app.Options)

	checks := make([]handlers.HealthChecker, 0, len(app.Checks))
	for _, c := range app.Checks {
		checks = append(checks, handlers.NewCheck(c.Name, c.Fn))
	}

	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.Server.CORSOrigins

	return httpserver.NewRouter(httpserver.RouterConfig{
		PageHandler:       handlers.NewPageHandler(app.Runner, options, maxUpload, app.Logger),
		PrioritizeHandler: handlers.NewPrioritizeHandler(app.Runner, options, maxUpload, app.Logger),
		ArtifactHandler:   handlers.NewArtifactHandler(app.Runner, app.Logger),
		HealthHandler:     handlers.NewHealthHandler(version, checks...),
		CORS:              cors,
		Logging:           middleware.DefaultLoggingConfig(),
		Logger:            app.Logger.Named("http"),
		Metrics:           app.Metrics,
		MetricsCollector:  app.Collector,
		MetricsPath:       cfg.Metrics.Path,
		Debug:             cfg.Server.Mode == "debug",
	})
}

// Run serves until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config, logger logging.Logger, opts Options) error {
	app, err := bootstrap.New(ctx, cfg, logger, bootstrap.Options{StoreRuns: true, Publish: true})
	if err != nil {
		return err
	}
	defer app.Close()

	if opts.ConfigPath != "" {
		if err := watch(opts.ConfigPath, app, logger); err != nil {
			logger.Warn("configuration hot reload disabled", logging.Err(err))
		}
	}

	srv := httpserver.NewServer(cfg.Server, NewHandler(app, opts.Version), logger)
	logger.Info("starting api server",
		logging.String("version", opts.Version),
		logging.String("addr", srv.Addr()),
		logging.String("mode", cfg.Server.Mode))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	return g.Wait()
}

// watch reloads the pipeline section and the log level on every valid write
// of the config file.  Other sections need a restart.
func watch(path string, app *bootstrap.App, logger logging.Logger) error {
	return config.Watch(path, func(cfg *config.Config) {
		if err := app.UpdatePipeline(cfg.Pipeline); err != nil {
			logger.Warn("pipeline reload rejected", logging.Err(err))
		}
		if ls, ok := logger.(logging.LevelSetter); ok {
			ls.SetLevel(cfg.Log.Level)
		}
	}, func(err error) {
		logger.Warn("configuration reload failed", logging.Err(err))
	})
}

//Personal.AI order the ending
