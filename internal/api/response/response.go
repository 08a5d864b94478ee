// Package response writes the API's JSON responses. Every handler goes
// through these helpers so success payloads and error bodies stay uniform
// across endpoints.
package response

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorResponse is the JSON body of every non-2xx response. Details carries
// optional context such as a per-field validation map and is omitted when nil.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// RespondJSON writes data as JSON with the given status code. A nil data
// writes the status alone, which is how 204 No Content responses are sent.
// Encoding failures are logged; by then the status line is already on the
// wire, so the response cannot be rewritten.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("failed to encode JSON response: %v", err)
		}
	}
}

// RespondError writes a structured ErrorResponse. The message is the short
// client-facing description; details may hold an error string, a field map,
// or nil.
//
// Example:
//
//	response.RespondError(w, http.StatusNotFound, "portfolio not found", "")
//	response.RespondError(w, http.StatusBadRequest, "validation failed", vErr.Fields)
func RespondError(w http.ResponseWriter, status int, message string, details interface{}) {
	response := ErrorResponse{
		Error:   message,
		Details: details,
	}
	RespondJSON(w, status, response)
}
