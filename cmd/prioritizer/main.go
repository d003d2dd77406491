// Command prioritizer evaluates docked candidate molecules from the command
// line and hosts the web interface with "prioritizer serve".
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/turtacn/admet-prioritizer/internal/interfaces/cli"
)

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func init() {
	cli.Version = version
	cli.GitCommit = commit
	cli.BuildDate = buildDate
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cli.Execute(ctx)
	stop()
	os.Exit(code)
}

//Personal.AI order the ending
