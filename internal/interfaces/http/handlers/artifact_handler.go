package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/turtacn/admet-prioritizer/internal/application/prioritization"
	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/admet-prioritizer/pkg/errors"
)

// ArtifactHandler serves the downloads of a stored run.
type ArtifactHandler struct {
	runner *prioritization.Runner
	logger logging.Logger
}

// NewArtifactHandler creates the artifact handler.
func NewArtifactHandler(runner *prioritization.Runner, logger logging.Logger) *ArtifactHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ArtifactHandler{runner: runner, logger: logger}
}

// ExportCSV handles GET /runs/{id}/export.csv.
func (h *ArtifactHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	report, ok := h.report(w, r)
	if !ok {
		return
	}
	data, err := prioritization.ExportCSV(report)
	if err != nil {
		writeAppError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", prioritization.ExportFileName))
	_, _ = w.Write(data)
}

// Depiction handles GET /runs/{id}/depictions/{index}.png where index is
// the candidate's position in the final order.
func (h *ArtifactHandler) Depiction(w http.ResponseWriter, r *http.Request) {
	position, ok := intParam(r, "index")
	if !ok {
		writeAppError(w, errors.InvalidParam("depiction index must be a non-negative integer"))
		return
	}
	report, ok := h.report(w, r)
	if !ok {
		return
	}
	png, ok := report.Depiction(position)
	if !ok {
		writeAppError(w, errors.NotFound(fmt.Sprintf("no depiction at position %d", position)))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	_, _ = w.Write(png)
}

// Chart handles GET /runs/{id}/charts/{name} for the scatter and violations
// charts, each rendered as a standalone HTML page.
func (h *ArtifactHandler) Chart(w http.ResponseWriter, r *http.Request) {
	name := strings.ToLower(chi.URLParam(r, "name"))
	if name != "scatter" && name != "violations" {
		writeAppError(w, errors.NotFound(fmt.Sprintf("unknown chart %q", name)))
		return
	}
	report, ok := h.report(w, r)
	if !ok {
		return
	}

	var page []byte
	var err error
	if name == "scatter" {
		page, err = prioritization.RenderChart(report.ScatterChart())
	} else {
		page, err = prioritization.RenderChart(report.ViolationsChart())
	}
	if err != nil {
		h.logger.Error("chart render failed", logging.String("chart", name), logging.Err(err))
		writeAppError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func (h *ArtifactHandler) report(w http.ResponseWriter, r *http.Request) (*prioritization.Report, bool) {
	id, err := runIDParam(r)
	if err != nil {
		writeAppError(w, err)
		return nil, false
	}
	report, err := h.runner.Lookup(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return nil, false
	}
	return report, true
}

//Personal.AI order the ending
