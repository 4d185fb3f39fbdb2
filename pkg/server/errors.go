package server

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/graphml"
)

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Line      int    `json:"line,omitempty"`
	Column    int    `json:"column,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	resp := errorResponse{
		Error:     errors.UserMessage(err),
		Code:      string(errors.GetCode(err)),
		RequestID: RequestIDFromContext(r.Context()),
	}
	var pe *graphml.ParseError
	if stderrors.As(err, &pe) {
		resp.Line, resp.Column = pe.Line, pe.Column
	}
	if status >= http.StatusInternalServerError {
		loggerFrom(r.Context()).Error("request failed", "err", err)
	} else {
		loggerFrom(r.Context()).Debug("request rejected", "status", status, "err", err)
	}
	writeJSON(w, status, resp)
}

// statusOf maps coded errors to HTTP status codes.
func statusOf(err error) int {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	code := errors.GetCode(err)
	switch {
	case code == errors.ErrCodeInvalidInput, code == errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case code == errors.ErrCodeUnsupported:
		return http.StatusUnsupportedMediaType
	case strings.HasPrefix(string(code), "PARSE_"):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
