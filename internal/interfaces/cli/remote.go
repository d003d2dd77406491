package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/admet-prioritizer/pkg/client"
	"github.com/turtacn/admet-prioritizer/pkg/errors"
	ctypes "github.com/turtacn/admet-prioritizer/pkg/types/candidate"
)

// clientLogger routes client diagnostics into the structured logger.
type clientLogger struct{ l logging.Logger }

func (c clientLogger) Debugf(format string, args ...interface{}) {
	c.l.Debug(fmt.Sprintf(format, args...))
}
func (c clientLogger) Infof(format string, args ...interface{}) {
	c.l.Info(fmt.Sprintf(format, args...))
}
func (c clientLogger) Errorf(format string, args ...interface{}) {
	c.l.Error(fmt.Sprintf(format, args...))
}

// runRemote sends the input to a running server instead of evaluating it
// in-process.  Uploads travel as pasted text.
func runRemote(ctx context.Context, cliCtx *CLIContext, opts *AnalyzeOptions, stdin io.Reader, out, errOut io.Writer) error {
	if opts.Publish {
		return errors.InvalidParam("--publish cannot be combined with --server; the server publishes on its own")
	}
	c, err := client.NewClient(opts.Server, client.WithLogger(clientLogger{cliCtx.Logger.Named("client")}))
	if err != nil {
		return err
	}
	req, err := remoteRequest(opts, stdin)
	if err != nil {
		return err
	}

	resp, err := c.Prioritize(ctx, req)
	if err != nil {
		return fromAPIError(err)
	}
	runID := string(resp.Summary.RunID)

	switch opts.Output {
	case FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			return err
		}
	case FormatCSV:
		data, err := c.ExportCSV(ctx, runID)
		if err != nil {
			return fromAPIError(err)
		}
		if _, err := out.Write(data); err != nil {
			return err
		}
	default:
		if _, err := io.WriteString(out, formatRemoteTable(resp)); err != nil {
			return err
		}
	}

	if opts.Export != "" {
		data, err := c.ExportCSV(ctx, runID)
		if err != nil {
			return fromAPIError(err)
		}
		if err := os.WriteFile(opts.Export, data, 0o644); err != nil {
			return errors.Wrap(err, errors.CodeExportFailed, "cannot write export").WithDetail(opts.Export)
		}
		fmt.Fprintf(errOut, "results written to %s\n", opts.Export)
	}
	if opts.Depictions != "" {
		if err := os.MkdirAll(opts.Depictions, 0o755); err != nil {
			return errors.Wrap(err, errors.CodeExportFailed, "cannot create depiction directory").WithDetail(opts.Depictions)
		}
		n := 0
		for pos, cand := range resp.Candidates {
			if cand.DepictionURL == "" {
				continue
			}
			png, err := c.Depiction(ctx, runID, pos)
			if err != nil {
				return fromAPIError(err)
			}
			path := filepath.Join(opts.Depictions, fmt.Sprintf("%03d.png", pos))
			if err := os.WriteFile(path, png, 0o644); err != nil {
				return errors.Wrap(err, errors.CodeExportFailed, "cannot write depiction").WithDetail(path)
			}
			n++
		}
		fmt.Fprintf(errOut, "%d depictions written to %s\n", n, opts.Depictions)
	}
	return nil
}

func remoteRequest(opts *AnalyzeOptions, stdin io.Reader) (ctypes.PrioritizeRequest, error) {
	paste := ctypes.PrioritizeRequest{Source: string(ctypes.SourcePaste)}
	switch {
	case opts.Example:
		return ctypes.PrioritizeRequest{Source: string(ctypes.SourceExample)}, nil
	case opts.Data != "":
		paste.Data = opts.Data
	case opts.Stdin:
		b, err := io.ReadAll(stdin)
		if err != nil {
			return paste, errors.Wrap(err, errors.CodeInvalidParam, "cannot read standard input")
		}
		paste.Data = string(b)
	case opts.File != "":
		b, err := os.ReadFile(opts.File)
		if err != nil {
			return paste, errors.Wrap(err, errors.CodeInvalidParam, "cannot open input file").WithDetail(opts.File)
		}
		paste.Data = string(b)
	default:
		return paste, errors.Unready("Please provide input data to start analysis.")
	}
	if strings.TrimSpace(paste.Data) == "" {
		return paste, errors.Unready("Please provide input data to start analysis.")
	}
	return paste, nil
}

// fromAPIError restores the server's error code so exit codes match local
// runs.
func fromAPIError(err error) error {
	var apiErr *client.APIError
	if !stderrors.As(err, &apiErr) || apiErr.Code == "" {
		return err
	}
	e := errors.New(errors.ErrorCode(apiErr.Code), apiErr.Message)
	if apiErr.Detail != "" {
		e = e.WithDetail(apiErr.Detail)
	}
	return e
}

func formatRemoteTable(resp *ctypes.PrioritizeResponse) string {
	var buf strings.Builder
	buf.WriteString("\n=== Prioritized Drug Candidates ===\n")
	buf.WriteString("Only 'Pass' molecules are ranked (lower Docking Score = better binding).\n\n")

	table := tablewriter.NewWriter(&buf)
	table.Header([]string{"SMILES", "Docking_Score", "Status", "Violations", "ADMET_Predict", "Final_Rank"})
	for _, c := range resp.Candidates {
		row := []string{c.Structure, "", colorizeLabel(c.Classification, c.Status), "", "", ""}
		if c.DockingScore != nil {
			row[1] = fmt.Sprintf("%g", *c.DockingScore)
		}
		if c.Violations != nil {
			row[3] = fmt.Sprintf("%d", *c.Violations)
		}
		if c.Admet != nil {
			row[4] = string(*c.Admet)
		}
		if c.Rank != nil {
			row[5] = fmt.Sprintf("%d", *c.Rank)
		}
		table.Append(row)
	}
	table.Render()

	s := resp.Summary
	fmt.Fprintf(&buf, "\n%s %d    %s %d\n",
		color.GreenString("Passed (Drug-like):"), s.Passed,
		color.RedString("Failed (Violations):"), s.Failed)
	if s.Invalid > 0 {
		fmt.Fprintf(&buf, "%s %d\n", color.YellowString("Invalid input:"), s.Invalid)
	}
	fmt.Fprintf(&buf, "run %s\n", s.RunID)
	return buf.String()
}

//Personal.AI order the ending
