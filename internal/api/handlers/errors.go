package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the JSON error envelope returned by every endpoint
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// sendError sends a standardized JSON error response
func sendError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errResp := ErrorResponse{Error: message}
	if err != nil {
		errResp.Details = err.Error()
	}
	json.NewEncoder(w).Encode(errResp)
}
