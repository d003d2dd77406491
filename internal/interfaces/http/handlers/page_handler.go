package handlers

import (
	"bytes"
	"embed"
	stderrors "errors"
	"html/template"
	"net/http"

	"github.com/turtacn/admet-prioritizer/internal/application/prioritization"
	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/admet-prioritizer/pkg/errors"
	ctypes "github.com/turtacn/admet-prioritizer/pkg/types/candidate"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Banner texts of the interactive page.
const (
	msgStart    = "Upload, paste, or load example data, then click Analyze & Prioritize Candidates to start."
	msgComplete = "Analysis Complete!"
)

type methodOption struct {
	Value   ctypes.InputSource
	Label   string
	Checked bool
}

type banner struct {
	Kind    string // info | success | error
	Message string
}

type galleryView struct {
	URL     string
	Caption string
}

type resultView struct {
	Columns       []string
	Rows          [][]string
	Failures      []ctypes.RecordFailureDTO
	Gallery       []galleryView
	Passed        int
	Failed        int
	ScatterURL    string
	ViolationsURL string
	ExportURL     string
	ExportName    string
}

type pageData struct {
	Methods         []methodOption
	StructureColumn string
	ScoreColumn     string
	Text            string
	Banner          *banner
	Notice          string
	Result          *resultView
}

// PageHandler serves the interactive page.
type PageHandler struct {
	runner    *prioritization.Runner
	options   OptionsSource
	maxUpload int64
	logger    logging.Logger
}

// NewPageHandler creates the page handler.
func NewPageHandler(runner *prioritization.Runner, options OptionsSource, maxUpload int64, logger logging.Logger) *PageHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &PageHandler{runner: runner, options: options, maxUpload: maxUpload, logger: logger}
}

// Index handles GET /: the input form with the start-up guidance.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	data := h.newPage(h.options(), ctypes.SourceExample, prioritization.ExampleData)
	data.Banner = &banner{Kind: "info", Message: msgStart}
	h.render(w, http.StatusOK, data)
}

// Analyze handles POST /analyze and renders the results under the form.
// Every outcome renders the page; only the banner differs.
func (h *PageHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	opts := h.options()

	req, err := formRequest(r, h.maxUpload)
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}
	if err != nil {
		data := h.newPage(opts, ctypes.SourceExample, prioritization.ExampleData)
		data.Banner = errorBanner(err)
		h.render(w, http.StatusOK, data)
		return
	}

	text := req.Text
	if req.Source != ctypes.SourcePaste {
		text = prioritization.ExampleData
	}
	data := h.newPage(opts, req.Source, text)

	req.Options = opts
	res, err := h.runner.Run(r.Context(), req)
	if err != nil {
		data.Banner = errorBanner(err)
		h.render(w, http.StatusOK, data)
		return
	}
	data.Banner = &banner{Kind: "success", Message: msgComplete}
	if res.PublishErr != nil {
		data.Notice = "Results could not be published: " + res.PublishErr.Error()
	}
	data.Result = resultViewOf(res.Report)
	h.render(w, http.StatusOK, data)
}

func (h *PageHandler) newPage(opts prioritization.Options, selected ctypes.InputSource, text string) *pageData {
	if selected == "" {
		selected = ctypes.SourceExample
	}
	methods := []methodOption{
		{Value: ctypes.SourceExample, Label: "Use Example Data"},
		{Value: ctypes.SourcePaste, Label: "Paste Custom Data"},
		{Value: ctypes.SourceUpload, Label: "Upload CSV File"},
	}
	for i := range methods {
		methods[i].Checked = methods[i].Value == selected
	}
	return &pageData{
		Methods:         methods,
		StructureColumn: opts.StructureColumn,
		ScoreColumn:     opts.ScoreColumn,
		Text:            text,
	}
}

func (h *PageHandler) render(w http.ResponseWriter, status int, data *pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.logger.Error("page render failed", logging.Err(err))
		http.Error(w, "page render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func errorBanner(err error) *banner {
	var msg string
	switch {
	case errors.IsUnready(err):
		return &banner{Kind: "info", Message: errorMessage(err)}
	case errors.IsCode(err, errors.CodeSchema):
		msg = errorMessage(err)
	default:
		msg = "Error during processing: " + errorMessage(err)
	}
	return &banner{Kind: "error", Message: msg}
}

func errorMessage(err error) string {
	var ae *errors.AppError
	if stderrors.As(err, &ae) {
		return ae.Message
	}
	return err.Error()
}

func resultViewOf(r *prioritization.Report) *resultView {
	view := &resultView{
		Columns:       prioritization.ExportColumns,
		Passed:        r.PassCount(),
		Failed:        r.FailCount(),
		ExportName:    prioritization.ExportFileName,
		ExportURL:     RunLinks(r.RunID)["export"],
		ScatterURL:    RunLinks(r.RunID)["chart_scatter"],
		ViolationsURL: RunLinks(r.RunID)["chart_violations"],
	}
	for _, c := range r.Candidates {
		view.Rows = append(view.Rows, prioritization.ExportRow(c))
	}
	for _, f := range r.Failures {
		view.Failures = append(view.Failures, f.ToDTO())
	}
	for _, item := range r.Gallery() {
		view.Gallery = append(view.Gallery, galleryView{
			URL:     DepictionPath(r.RunID, item.Position),
			Caption: item.Caption,
		})
	}
	return view
}

//Personal.AI order the ending
