// Package common provides shared response-writing helpers for the API.
package common

import (
	"encoding/json"
	"net/http"

	"github.com/coccyx/gogen-api/internal/logger"
	"github.com/coccyx/gogen-api/internal/registry"
)

// WriteJSONResponse writes a JSON response with the given data.
func WriteJSONResponse(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Errorf("Failed to encode JSON response: %v", err)
	}
}

// WriteErrorResponse writes a standardized error response.
func WriteErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	errorResp := map[string]string{
		"error": message,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(errorResp); err != nil {
		logger.Errorf("Failed to encode error response: %v", err)
	}
}

// WriteServiceError maps a service error onto the wire. Taxonomy errors are
// surfaced verbatim with their mapped status; anything else is logged with
// full context and masked as a generic failure.
func WriteServiceError(w http.ResponseWriter, err error) {
	status, known := registry.HTTPStatus(err)
	if !known {
		logger.Errorf("Unexpected internal error: %v", err)
		WriteErrorResponse(w, "internal error", http.StatusInternalServerError)
		return
	}
	WriteErrorResponse(w, err.Error(), status)
}
