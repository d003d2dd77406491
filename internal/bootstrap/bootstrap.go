// Package bootstrap assembles the prioritizer from a configuration: metrics,
// the molecule and pipeline services, the run store and the optional
// artifact publisher.  Both binaries build on it.
package bootstrap

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/turtacn/admet-prioritizer/internal/application/prioritization"
	"github.com/turtacn/admet-prioritizer/internal/config"
	"github.com/turtacn/admet-prioritizer/internal/domain/molecule"
	"github.com/turtacn/admet-prioritizer/internal/infrastructure/cache/memory"
	redisstore "github.com/turtacn/admet-prioritizer/internal/infrastructure/database/redis"
	"github.com/turtacn/admet-prioritizer/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/admet-prioritizer/internal/infrastructure/storage/minio"
)

// Options selects the optional parts to build.
type Options struct {
	// StoreRuns keeps finished runs in the configured artifacts backend.
	StoreRuns bool

	// Publish builds the MinIO and Kafka sinks that are enabled in config.
	Publish bool
}

// Check is a named readiness probe.
type Check struct {
	Name string
	Fn   func(ctx context.Context) error
}

// App holds the assembled components.
type App struct {
	Config    *config.Config
	Logger    logging.Logger
	Collector prometheus.MetricsCollector
	Metrics   *prometheus.AppMetrics
	Service   prioritization.Service
	Runner    *prioritization.Runner
	Publisher *prioritization.Publisher
	Checks    []Check

	pipeline atomic.Pointer[config.PipelineConfig]

	closeOnce sync.Once
	closers   []func() error
}

// New builds an App.  On error every component built so far is closed.
func New(ctx context.Context, cfg *config.Config, logger logging.Logger, opts Options) (app *App, err error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	app = &App{Config: cfg, Logger: logger}
	pipeline := cfg.Pipeline
	app.pipeline.Store(&pipeline)

	defer func() {
		if err != nil {
			_ = app.Close()
			app = nil
		}
	}()

	if err = app.initMetrics(); err != nil {
		return app, err
	}
	app.Service = prioritization.NewService(molecule.NewService(nil, logger), app.Metrics, logger)

	var runnerOpts []prioritization.RunnerOption
	if app.Metrics != nil {
		runnerOpts = append(runnerOpts, prioritization.WithRunnerMetrics(app.Metrics))
	}
	if opts.StoreRuns {
		store, err := app.initRunStore()
		if err != nil {
			return app, err
		}
		runnerOpts = append(runnerOpts, prioritization.WithRunStore(store, cfg.Artifacts.Backend))
	}
	if opts.Publish {
		if err = app.initPublisher(ctx); err != nil {
			return app, err
		}
		runnerOpts = append(runnerOpts, prioritization.WithPublisher(app.Publisher))
	}
	app.Runner = prioritization.NewRunner(app.Service, logger, runnerOpts...)

	logger.Info("prioritizer assembled",
		logging.String("artifacts_backend", cfg.Artifacts.Backend),
		logging.Bool("store_runs", opts.StoreRuns),
		logging.Bool("minio", app.Publisher != nil && cfg.MinIO.Enabled),
		logging.Bool("kafka", app.Publisher != nil && cfg.Kafka.Enabled))
	return app, nil
}

func (a *App) initMetrics() error {
	if !a.Config.Metrics.Enabled {
		return nil
	}
	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            a.Config.Metrics.Namespace,
		EnableGoMetrics:      a.Config.Metrics.EnableGoMetrics,
		EnableProcessMetrics: a.Config.Metrics.EnableProcessMetrics,
	}, a.Logger)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	a.Collector = collector
	a.Metrics = prometheus.NewAppMetrics(collector)
	return nil
}

func (a *App) initRunStore() (prioritization.RunStore, error) {
	cfg := a.Config.Artifacts
	var cache prioritization.BlobCache
	switch cfg.Backend {
	case "redis":
		client, err := redisstore.NewClient(a.Config.Redis, a.Logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		rc := redisstore.NewCache(client, a.Logger, redisstore.WithDefaultTTL(cfg.TTL))
		a.Checks = append(a.Checks, Check{Name: "redis", Fn: rc.Ping})
		cache = rc
	default:
		mc := memory.NewCache(cfg.TTL, cfg.CleanupInterval, a.Logger)
		a.closers = append(a.closers, func() error { mc.Flush(); return nil })
		cache = mc
	}
	store := prioritization.NewRunStore(cache, cfg.TTL, a.Logger)
	a.Checks = append(a.Checks, Check{Name: "run_store", Fn: func(ctx context.Context) error {
		_, err := store.Count(ctx)
		return err
	}})
	return store, nil
}

func (a *App) initPublisher(ctx context.Context) error {
	var store prioritization.ArtifactStore
	var events prioritization.EventPublisher

	if a.Config.MinIO.Enabled {
		client, err := minio.NewClient(ctx, a.Config.MinIO, a.Logger)
		if err != nil {
			return err
		}
		store = minio.NewArtifactRepository(client, a.Logger)
		a.Checks = append(a.Checks, Check{Name: "minio", Fn: client.HealthCheck})
	}
	if a.Config.Kafka.Enabled {
		producer, err := kafka.NewProducer(a.Config.Kafka, a.Logger)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, producer.Close)
		events = producer
	}
	if store != nil || events != nil {
		a.Publisher = prioritization.NewPublisher(store, events, a.Metrics, a.Logger)
	}
	return nil
}

// Pipeline returns the pipeline section in force.
func (a *App) Pipeline() config.PipelineConfig { return *a.pipeline.Load() }

// Options snapshots the pipeline section for one request.
func (a *App) Options() prioritization.Options {
	return prioritization.OptionsFromConfig(a.Pipeline())
}

// UpdatePipeline swaps in a new pipeline section after validating it.
// Requests already running keep the snapshot they took.
func (a *App) UpdatePipeline(p config.PipelineConfig) error {
	if err := p.Validate(); err != nil {
		return err
	}
	a.pipeline.Store(&p)
	a.Logger.Info("pipeline configuration reloaded",
		logging.Int("max_violations", p.Rules.MaxViolations),
		logging.Int("depiction_size", p.DepictionSize))
	return nil
}

// Close releases every backend connection.  It is safe to call twice.
func (a *App) Close() error {
	var firstErr error
	a.closeOnce.Do(func() {
		for i := len(a.closers) - 1; i >= 0; i-- {
			if err := a.closers[i](); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	})
	return firstErr
}

//Personal.AI order the ending
