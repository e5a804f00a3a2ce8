package controller

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/go-jose/go-jose/v4/json"
	"go.uber.org/zap"

	"github.com/smoothie-fi/smoothie/pkg/cache"
)

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// paramError marks a request parameter that failed validation.
type paramError struct{ msg string }

func (e *paramError) Error() string { return e.msg }

func badParam(msg string) error { return &paramError{msg: msg} }

// encodeBody renders v the way every handler writes it.
func encodeBody(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeFailure writes an error body. Failures must never be stored by a shared
// cache, whatever Cache-Control the route set.
func writeFailure(w http.ResponseWriter, statusCode int, body errorResponse) {
	w.Header().Set("Cache-Control", cache.NoStorePolicy.Header())
	writeJSON(w, statusCode, body)
}

func writeBadRequest(w http.ResponseWriter, err error) {
	writeFailure(w, http.StatusBadRequest, errorResponse{Error: "Bad request", Message: err.Error()})
}

// writeError maps err to a response: parameter errors are 400, anything else
// is logged and reported as 500.
func (c *Controller) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var pe *paramError
	if errors.As(err, &pe) {
		writeBadRequest(w, pe)
		return
	}

	requestLogger(r.Context(), c.App.Logger).Error("Request failed",
		zap.String("path", r.URL.Path),
		zap.Error(err))
	writeFailure(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error", Message: err.Error()})
}
