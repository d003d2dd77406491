package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/turtacn/admet-prioritizer/internal/application/prioritization"
	"github.com/turtacn/admet-prioritizer/internal/bootstrap"
	"github.com/turtacn/admet-prioritizer/internal/domain/candidate"
	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/admet-prioritizer/pkg/errors"
	ctypes "github.com/turtacn/admet-prioritizer/pkg/types/candidate"
)

// Output formats of analyze.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

// AnalyzeOptions holds the flags of the analyze command.
type AnalyzeOptions struct {
	Example        bool
	File           string
	Stdin          bool
	Data           string
	Output         string
	Export         string
	Depictions     string
	Publish        bool
	SkipDepictions bool
	Server         string
}

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	opts := &AnalyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Evaluate and rank a candidate table",
		Long: "Reads a table with SMILES and Docking_Score columns from exactly one source,\n" +
			"evaluates every candidate and prints the prioritized result.",
		Example: "  prioritizer analyze --example\n" +
			"  prioritizer analyze --file candidates.csv -o csv > ranked.csv\n" +
			"  cat candidates.csv | prioritizer analyze --stdin --depictions ./img",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			return runAnalyze(cmd.Context(), cliCtx, opts, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.Example, "example", false, "analyze the bundled example data")
	f.StringVarP(&opts.File, "file", "f", "", "analyze a CSV file")
	f.BoolVar(&opts.Stdin, "stdin", false, "read the table from standard input")
	f.StringVar(&opts.Data, "data", "", "analyze CSV text given inline")
	f.StringVarP(&opts.Output, "output", "o", FormatTable, "output format: table|json|csv")
	f.StringVar(&opts.Export, "export", "", "also write the results CSV to this path")
	f.StringVar(&opts.Depictions, "depictions", "", "write structure depictions as PNG files into this directory")
	f.BoolVar(&opts.Publish, "publish", false, "publish artifacts and the completion event to the configured sinks")
	f.BoolVar(&opts.SkipDepictions, "skip-depictions", false, "do not render structure depictions")
	f.StringVar(&opts.Server, "server", "", "evaluate on a running server at this base URL instead of in-process")
	return cmd
}

func (o *AnalyzeOptions) sources() int {
	n := 0
	for _, set := range []bool{o.Example, o.File != "", o.Stdin, o.Data != ""} {
		if set {
			n++
		}
	}
	return n
}

func runAnalyze(ctx context.Context, cliCtx *CLIContext, opts *AnalyzeOptions, stdin io.Reader, out, errOut io.Writer) error {
	switch opts.Output {
	case FormatTable, FormatJSON, FormatCSV:
	default:
		return errors.InvalidParam(fmt.Sprintf("unknown output format %q; expected table|json|csv", opts.Output))
	}
	if opts.sources() > 1 {
		return errors.InvalidParam("choose only one of --example, --file, --stdin, --data")
	}
	if opts.Server != "" {
		return runRemote(ctx, cliCtx, opts, stdin, out, errOut)
	}

	cfg := *cliCtx.Config
	if opts.SkipDepictions {
		cfg.Pipeline.SkipDepictions = true
	}
	app, err := bootstrap.New(ctx, &cfg, cliCtx.Logger, bootstrap.Options{Publish: opts.Publish})
	if err != nil {
		return err
	}
	defer app.Close()

	req, closeInput, err := buildRequest(opts, stdin)
	if err != nil {
		return err
	}
	defer closeInput()
	req.Options = app.Options()

	res, err := app.Runner.Run(ctx, req)
	if err != nil {
		return err
	}
	report := res.Report

	if err := writeReport(out, report, opts.Output); err != nil {
		return err
	}
	if opts.Export != "" {
		if err := exportFile(opts.Export, report); err != nil {
			return err
		}
		fmt.Fprintf(errOut, "results written to %s\n", opts.Export)
	}
	if opts.Depictions != "" {
		n, err := writeDepictions(opts.Depictions, report)
		if err != nil {
			return err
		}
		fmt.Fprintf(errOut, "%d depictions written to %s\n", n, opts.Depictions)
	}
	if opts.Publish {
		reportPublish(errOut, cliCtx.Logger, res)
	}
	return nil
}

// buildRequest selects the input source.  No source at all is not an error
// of the input; the service reports it as not ready.
func buildRequest(opts *AnalyzeOptions, stdin io.Reader) (*prioritization.AnalysisRequest, func(), error) {
	req := &prioritization.AnalysisRequest{}
	noop := func() {}
	switch {
	case opts.Example:
		req.Source = ctypes.SourceExample
	case opts.Data != "":
		req.Source = ctypes.SourcePaste
		req.Text = opts.Data
	case opts.Stdin:
		req.Source = ctypes.SourceUpload
		req.Upload = stdin
		req.UploadName = "stdin"
	case opts.File != "":
		f, err := os.Open(opts.File)
		if err != nil {
			return nil, noop, errors.Wrap(err, errors.CodeInvalidParam, "cannot open input file").WithDetail(opts.File)
		}
		req.Source = ctypes.SourceUpload
		req.Upload = f
		req.UploadName = filepath.Base(opts.File)
		return req, func() { _ = f.Close() }, nil
	}
	return req, noop, nil
}

func writeReport(w io.Writer, r *prioritization.Report, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r.ToResponse(nil, nil))
	case FormatCSV:
		return prioritization.WriteCSV(w, r)
	default:
		_, err := io.WriteString(w, formatTable(r))
		return err
	}
}

// formatTable renders the prioritized candidates followed by the summary
// counts and any isolated record failures.
func formatTable(r *prioritization.Report) string {
	var buf strings.Builder
	buf.WriteString("\n=== Prioritized Drug Candidates ===\n")
	buf.WriteString("Only 'Pass' molecules are ranked (lower Docking Score = better binding).\n\n")

	table := tablewriter.NewWriter(&buf)
	table.Header(prioritization.ExportColumns)
	for _, c := range r.Candidates {
		row := prioritization.ExportRow(c)
		row[2] = colorizeStatus(c)
		table.Append(row)
	}
	table.Render()

	fmt.Fprintf(&buf, "\n%s %d    %s %d\n",
		color.GreenString("Passed (Drug-like):"), r.PassCount(),
		color.RedString("Failed (Violations):"), r.FailCount())
	if n := r.InvalidCount(); n > 0 {
		fmt.Fprintf(&buf, "%s %d\n", color.YellowString("Invalid input:"), n)
	}
	for _, f := range r.Failures {
		fmt.Fprintf(&buf, "  row %d (%s): %s\n", f.Index, f.Structure, f.Message)
	}
	return buf.String()
}

func colorizeStatus(c candidate.EvaluatedCandidate) string {
	return colorizeLabel(c.Classification, c.StatusLabel())
}

func colorizeLabel(class ctypes.Classification, label string) string {
	switch class {
	case ctypes.ClassPass:
		return color.GreenString("%s", label)
	case ctypes.ClassFail:
		return color.RedString("%s", label)
	default:
		return color.YellowString("%s", label)
	}
}

func exportFile(path string, r *prioritization.Report) error {
	data, err := prioritization.ExportCSV(r)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, errors.CodeExportFailed, "cannot write export").WithDetail(path)
	}
	return nil
}

// writeDepictions writes one PNG per depicted candidate, named by its
// position in the final order.
func writeDepictions(dir string, r *prioritization.Report) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, errors.Wrap(err, errors.CodeExportFailed, "cannot create depiction directory").WithDetail(dir)
	}
	gallery := r.Gallery()
	for _, item := range gallery {
		path := filepath.Join(dir, fmt.Sprintf("%03d.png", item.Position))
		if err := os.WriteFile(path, item.PNG, 0o644); err != nil {
			return 0, errors.Wrap(err, errors.CodeExportFailed, "cannot write depiction").WithDetail(path)
		}
	}
	return len(gallery), nil
}

func reportPublish(w io.Writer, logger logging.Logger, res *prioritization.RunResult) {
	switch {
	case res.Published == nil && res.PublishErr == nil:
		fmt.Fprintln(w, color.YellowString("nothing published: no sink is enabled"))
	case res.PublishErr != nil:
		logger.Warn("publish failed", logging.Err(res.PublishErr))
		fmt.Fprintf(w, "%s %v\n", color.RedString("publish failed:"), res.PublishErr)
	default:
		p := res.Published
		if p.ExportKey != "" {
			fmt.Fprintf(w, "published %s (%d depictions)\n", p.ExportKey, len(p.DepictionKeys))
		}
		if p.EventSent {
			fmt.Fprintln(w, "run completion event sent")
		}
	}
}

//Personal.AI order the ending
