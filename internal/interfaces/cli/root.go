// Package cli implements the prioritizer command tree.
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/turtacn/admet-prioritizer/internal/config"
	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/admet-prioritizer/pkg/errors"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitError   = 1
	ExitUnready = 2
)

// cliContextKey is the context key for CLIContext.
type cliContextKey struct{}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
	Verbose    bool
	NoColor    bool
}

// CLIContext carries initialized dependencies through the command tree.
type CLIContext struct {
	Config     *config.Config
	ConfigPath string
	Logger     logging.Logger
	Verbose    bool
	NoColor    bool
}

// NewRootCommand creates the root command with every subcommand attached.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "prioritizer",
		Short: "ADMET & docking candidate prioritizer",
		Long: "prioritizer screens docked candidate molecules for drug-likeness, attaches a coarse\n" +
			"ADMET estimate and ranks the drug-like ones by docking score (lower is better).",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: ./prioritizer.yaml if present)")
	pf.StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")

	cmd.AddCommand(
		NewAnalyzeCmd(),
		NewExampleCmd(),
		NewServeCmd(),
		NewEventsCmd(),
	)
	return cmd
}

func persistentPreRun(cmd *cobra.Command, opts *RootOptions) error {
	if opts.NoColor {
		color.NoColor = true
	}

	path := opts.ConfigPath
	if path == "" {
		path = findConfig()
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger, err := initLogger(opts)
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}

	cliCtx := &CLIContext{
		Config:     cfg,
		ConfigPath: path,
		Logger:     logger,
		Verbose:    opts.Verbose,
		NoColor:    opts.NoColor,
	}
	cmd.SetContext(context.WithValue(cmd.Context(), cliContextKey{}, cliCtx))
	return nil
}

// findConfig returns the first config file found in the search path, or "".
func findConfig() string {
	paths := []string{"./prioritizer.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".prioritizer", "config.yaml"))
	}
	paths = append(paths, "/etc/prioritizer/config.yaml")
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// initLogger creates a console logger on stderr so that stdout carries only
// command output.
func initLogger(opts *RootOptions) (logging.Logger, error) {
	level := strings.ToLower(opts.LogLevel)
	if opts.Verbose {
		level = logging.LevelDebug
	}
	return logging.NewLogger(logging.LogConfig{
		Level:            level,
		Format:           "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	})
}

// GetCLIContext extracts CLIContext from a command's context.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.InvalidParam("command context is nil")
	}
	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, errors.InvalidParam("CLI context not initialized")
	}
	return cliCtx, nil
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context) int {
	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		PrintError(rootCmd, err)
		return ExitCode(err)
	}
	return ExitOK
}

// ExitCode maps err to the process exit code.  Input that was never
// supplied is distinguished from every real failure.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.IsUnready(err):
		return ExitUnready
	default:
		return ExitError
	}
}

// PrintError writes err to stderr.  Unready input is guidance, not a failure.
func PrintError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	msg := err.Error()
	var ae *errors.AppError
	if stderrors.As(err, &ae) {
		msg = ae.Message
		if ae.Detail != "" {
			msg += ": " + ae.Detail
		}
	}
	if errors.IsUnready(err) {
		fmt.Fprintln(cmd.ErrOrStderr(), color.CyanString("%s", msg))
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", color.RedString("Error:"), msg)
}

//Personal.AI order the ending
