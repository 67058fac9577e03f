// internal/api/respond.go
package api

import (
	"encoding/json"
	"net/http"

	apperrors "infraiq-workers/internal/common/errors"
)

type errorBody struct {
	Error       string      `json:"error"`
	Message     string      `json:"message"`
	Details     string      `json:"details,omitempty"`
	FieldErrors interface{} `json:"fieldErrors,omitempty"`
	RequestID   string      `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, stdErr *apperrors.StandardError) {
	body := errorBody{
		Error:     string(stdErr.Code),
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		RequestID: w.Header().Get(headerRequestID),
	}
	if fe, ok := stdErr.Metadata["fieldErrors"]; ok {
		body.FieldErrors = fe
	}
	writeJSON(w, status, body)
}

func methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	writeJSON(w, http.StatusMethodNotAllowed, errorBody{
		Error:   "METHOD_NOT_ALLOWED",
		Message: "method not allowed",
	})
}
