package handlers

import (
	"bytes"
	stderrors "errors"
	"io"
	"net/http"
	"strings"

	"github.com/turtacn/admet-prioritizer/internal/application/prioritization"
	"github.com/turtacn/admet-prioritizer/pkg/errors"
	ctypes "github.com/turtacn/admet-prioritizer/pkg/types/candidate"
)

// Form fields shared by the page and the multipart API.
const (
	fieldMethod = "method"
	fieldData   = "data"
	fieldFile   = "file"
)

// formRequest reads an analysis request from a urlencoded or multipart form.
// The returned request has no options yet.  A missing method or a missing
// upload yields a request that the service reports as not ready.
func formRequest(r *http.Request, maxUpload int64) (*prioritization.AnalysisRequest, error) {
	if err := parseForm(r, maxUpload); err != nil {
		return nil, err
	}

	req := &prioritization.AnalysisRequest{Text: r.FormValue(fieldData)}
	if m := r.FormValue(fieldMethod); m != "" {
		source, err := ctypes.ParseInputSource(m)
		if err != nil {
			return nil, errors.InvalidParam(err.Error())
		}
		req.Source = source
	}
	if req.Source != "" && req.Source != ctypes.SourceUpload {
		return req, nil
	}

	f, hdr, err := r.FormFile(fieldFile)
	switch {
	case err == nil:
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInvalidParam, "cannot read uploaded file")
		}
		req.Upload = bytes.NewReader(data)
		req.UploadName = hdr.Filename
	case stderrors.Is(err, http.ErrMissingFile), stderrors.Is(err, http.ErrNotMultipart):
	default:
		return nil, errors.Wrap(err, errors.CodeInvalidParam, "cannot read uploaded file")
	}
	return req, nil
}

func parseForm(r *http.Request, maxUpload int64) error {
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(maxUpload)
	} else {
		err = r.ParseForm()
	}
	if err == nil {
		return nil
	}
	if tooLarge(err) {
		return errors.Newf(errors.CodeInputTooLarge, "upload exceeds %d bytes", maxUpload)
	}
	return errors.Wrap(err, errors.CodeInvalidParam, "invalid form")
}

//Personal.AI order the ending
