package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hexcrawl/c3net/pkg/logging"
)

// respondJSON writes a JSON response with the given status code.
func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("failed to encode response", logging.Err(err))
	}
}

// respondError writes a JSON error response.
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, ErrorResponse{Error: message})
}

// sanitizeError converts an internal error to a user-safe message. The full
// error is logged but not exposed.
func (s *Server) sanitizeError(err error, operation string) string {
	if err == nil {
		return ""
	}
	s.log.Error("request failed", logging.String("operation", operation), logging.Err(err))
	return fmt.Sprintf("%s failed", operation)
}

// decodeJSON decodes a request body, answering 400 itself on failure.
// Reports whether decoding succeeded.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

// requireMethod answers 405 for the wrong verb. Reports whether the request
// may proceed.
func (s *Server) requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		s.respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}
