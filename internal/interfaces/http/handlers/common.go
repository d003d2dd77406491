// Package handlers implements the HTTP endpoints of the api server: the
// interactive page, the JSON API, run artifact downloads and health probes.
package handlers

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/turtacn/admet-prioritizer/internal/application/prioritization"
	"github.com/turtacn/admet-prioritizer/pkg/errors"
	"github.com/turtacn/admet-prioritizer/pkg/types/common"
)

// OptionsSource returns the pipeline options in force when it is called.
// Handlers call it once per request.
type OptionsSource func() prioritization.Options

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// writeAppError maps err to a status through its error code.  Unready input
// is not a failure: it answers 422 with the guidance message only.
func writeAppError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	resp := ErrorResponse{Code: code.String(), Message: err.Error()}
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		resp.Message = appErr.Message
		resp.Detail = appErr.Detail
	}
	writeJSON(w, errors.HTTPStatusForCode(code), resp)
}

// runIDParam reads and checks the {id} URL parameter.
func runIDParam(r *http.Request) (common.ID, error) {
	id := common.ID(chi.URLParam(r, "id"))
	if err := id.Validate(); err != nil {
		return "", errors.Newf(errors.CodeRunNotFound, "run %s not found or expired", id)
	}
	return id, nil
}

// intParam reads a non-negative integer URL parameter.
func intParam(r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	return n, err == nil && n >= 0
}

//Personal.AI order the ending
