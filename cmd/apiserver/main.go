// Command apiserver runs the prioritizer web interface and JSON API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/turtacn/admet-prioritizer/internal/apiserver"
	"github.com/turtacn/admet-prioritizer/internal/config"
	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/logging"
)

// Build-time variables injected via ldflags.
var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to configuration file (environment only when empty)")
	port := flag.Int("port", 0, "HTTP port (overrides server.port)")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	logger, err := logging.NewLogger(cfg.Log.LoggingConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("starting admet-prioritizer API server",
		logging.String("version", version),
		logging.String("addr", cfg.Server.Addr()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := apiserver.Run(ctx, cfg, logger, apiserver.Options{ConfigPath: *configPath, Version: version}); err != nil {
		stop()
		logger.Fatal("server exited with error", logging.Err(err))
	}
	logger.Info("server stopped")
}

//Personal.AI order the ending
