package handlers

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/turtacn/admet-prioritizer/internal/application/prioritization"
	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/admet-prioritizer/pkg/errors"
	ctypes "github.com/turtacn/admet-prioritizer/pkg/types/candidate"
	"github.com/turtacn/admet-prioritizer/pkg/types/common"
)

// PrioritizeHandler serves the JSON API.
type PrioritizeHandler struct {
	runner    *prioritization.Runner
	options   OptionsSource
	validate  *validator.Validate
	maxUpload int64
	logger    logging.Logger
}

// NewPrioritizeHandler creates the API handler.  Uploads larger than
// maxUpload bytes are rejected.
func NewPrioritizeHandler(runner *prioritization.Runner, options OptionsSource, maxUpload int64, logger logging.Logger) *PrioritizeHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &PrioritizeHandler{
		runner:    runner,
		options:   options,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		maxUpload: maxUpload,
		logger:    logger,
	}
}

// Prioritize handles POST /api/v1/prioritize.  A JSON body selects the
// example or pasted data; a multipart form with a "file" part uploads a
// table.
func (h *PrioritizeHandler) Prioritize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	var req *prioritization.AnalysisRequest
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		req, err = h.uploadRequest(r)
	} else {
		req, err = h.jsonRequest(r)
	}
	if err != nil {
		writeAppError(w, err)
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	res, err := h.runner.Run(r.Context(), req)
	if err != nil {
		writeAppError(w, err)
		return
	}
	report := res.Report
	writeJSON(w, http.StatusOK, report.ToResponse(h.links(report.RunID), h.depictionURL(report.RunID)))
}

// GetRun handles GET /api/v1/runs/{id}.
func (h *PrioritizeHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	id, err := runIDParam(r)
	if err != nil {
		writeAppError(w, err)
		return
	}
	report, err := h.runner.Lookup(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report.ToResponse(h.links(id), h.depictionURL(id)))
}

func (h *PrioritizeHandler) jsonRequest(r *http.Request) (*prioritization.AnalysisRequest, error) {
	var body ctypes.PrioritizeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if tooLarge(err) {
			return nil, errors.Newf(errors.CodeInputTooLarge, "request body exceeds %d bytes", h.maxUpload)
		}
		return nil, errors.Wrap(err, errors.CodeInvalidParam, "invalid JSON body")
	}
	if err := h.validate.Struct(body); err != nil {
		return nil, validationError(err)
	}
	source, err := ctypes.ParseInputSource(body.Source)
	if err != nil {
		return nil, errors.InvalidParam(err.Error())
	}
	return &prioritization.AnalysisRequest{Source: source, Text: body.Data, Options: h.options()}, nil
}

func (h *PrioritizeHandler) uploadRequest(r *http.Request) (*prioritization.AnalysisRequest, error) {
	req, err := formRequest(r, h.maxUpload)
	if err != nil {
		return nil, err
	}
	if req.Source == "" {
		req.Source = ctypes.SourceUpload
	}
	req.Options = h.options()
	return req, nil
}

func (h *PrioritizeHandler) links(id common.ID) map[string]string {
	if !h.runner.Stored() {
		return nil
	}
	return RunLinks(id)
}

func (h *PrioritizeHandler) depictionURL(id common.ID) func(int) string {
	if !h.runner.Stored() {
		return nil
	}
	return func(position int) string { return DepictionPath(id, position) }
}

// RunLinks lists the download endpoints of a stored run.
func RunLinks(id common.ID) map[string]string {
	base := "/runs/" + string(id)
	return map[string]string{
		"self":             "/api/v1/runs/" + string(id),
		"export":           base + "/export.csv",
		"chart_scatter":    base + "/charts/scatter",
		"chart_violations": base + "/charts/violations",
	}
}

// DepictionPath is the URL of the depiction at position.
func DepictionPath(id common.ID, position int) string {
	return fmt.Sprintf("/runs/%s/depictions/%d.png", id, position)
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Wrap(err, errors.CodeInvalidParam, "invalid request")
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s failed %q", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return errors.InvalidParam("invalid request").WithDetail(strings.Join(fields, "; "))
}

func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return stderrors.As(err, &mbe)
}

//Personal.AI order the ending
