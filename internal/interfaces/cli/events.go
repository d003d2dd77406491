package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/turtacn/admet-prioritizer/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/admet-prioritizer/pkg/errors"
	ctypes "github.com/turtacn/admet-prioritizer/pkg/types/candidate"
)

// NewEventsCmd groups commands that read the run event stream.
func NewEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect run completion events",
	}
	cmd.AddCommand(newEventsTailCmd())
	return cmd
}

func newEventsTailCmd() *cobra.Command {
	var (
		fromStart bool
		output    string
	)
	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Follow run completion events until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if output != FormatTable && output != FormatJSON {
				return errors.InvalidParam(fmt.Sprintf("unknown output format %q; expected table|json", output))
			}
			if !cliCtx.Config.Kafka.Enabled {
				return errors.New(errors.CodeInvalidParam, "kafka is not enabled in the configuration")
			}
			consumer, err := kafka.NewConsumer(cliCtx.Config.Kafka, fromStart, cliCtx.Logger)
			if err != nil {
				return err
			}
			defer consumer.Close()
			out := cmd.OutOrStdout()
			return consumer.Run(cmd.Context(), func(_ context.Context, env *kafka.EventEnvelope) error {
				return printEvent(out, env, output)
			})
		},
	}
	cmd.Flags().BoolVar(&fromStart, "from-start", false, "start from the oldest retained event")
	cmd.Flags().StringVarP(&output, "output", "o", FormatTable, "output format: table|json")
	return cmd
}

// printEvent writes one line per run completion event.  Other event types
// are ignored.
func printEvent(w io.Writer, env *kafka.EventEnvelope, format string) error {
	if env.EventType != kafka.EventTypeRunCompleted {
		return nil
	}
	var ev ctypes.RunCompletedEvent
	if err := env.DecodePayload(&ev); err != nil {
		return err
	}
	if format == FormatJSON {
		return json.NewEncoder(w).Encode(ev)
	}
	top := "-"
	if len(ev.TopRanked) > 0 {
		top = strings.Join(ev.TopRanked, ", ")
	}
	_, err := fmt.Fprintf(w, "%s  run %s  source=%s  total=%d  %s  %s  %s  top: %s\n",
		env.Timestamp.Format("2006-01-02 15:04:05"), ev.RunID, ev.Source, ev.Total,
		color.GreenString("pass=%d", ev.Passed),
		color.RedString("fail=%d", ev.Failed),
		color.YellowString("invalid=%d", ev.Invalid),
		top)
	return err
}

// splitAddr parses host:port.
func splitAddr(addr string) (string, int, error) {
	host, p, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, errors.InvalidParam(fmt.Sprintf("invalid address %q: %v", addr, err))
	}
	port, err := strconv.Atoi(p)
	if err != nil || port < 1 || port > 65535 {
		return "", 0, errors.InvalidParam(fmt.Sprintf("invalid port in address %q", addr))
	}
	return host, port, nil
}

//Personal.AI order the ending
