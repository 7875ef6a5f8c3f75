package http

import (
	"log/slog"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/restmcp/restmcp/internal/transport/transportcore"
)

// errorResponse represents a JSON error response body.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// errorResponder implements transportcore.ErrorResponder.
type errorResponder struct{}

// NewErrorResponder creates an error responder for transport-level failures.
// JSON-RPC protocol errors never pass through here; they ride 200 responses
// inside the envelope.
func NewErrorResponder() transportcore.ErrorResponder {
	return &errorResponder{}
}

// Unauthorized sends a 401 Unauthorized response with a WWW-Authenticate
// header per RFC 6750.
func (e *errorResponder) Unauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	slog.Warn("unauthorized request", "error", err)

	resp := errorResponse{
		Error:   "unauthorized",
		Message: "Authentication required",
	}
	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		slog.Error("failed to encode error response", "error", encodeErr)
	}
}

// InternalError sends a 500 Internal Server Error response.
// The response body contains a JSON error message.
func (e *errorResponder) InternalError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)

	slog.Error("internal server error", "error", err)

	resp := errorResponse{
		Error:   "internal_error",
		Message: "An internal server error occurred",
	}
	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		slog.Error("failed to encode error response", "error", encodeErr)
	}
}

// BadRequest sends a 400 Bad Request response.
// The response body contains a JSON error message.
func (e *errorResponder) BadRequest(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)

	slog.Warn("bad request", "error", err)

	message := "Invalid request"
	if err != nil {
		message = err.Error()
	}

	resp := errorResponse{
		Error:   "bad_request",
		Message: message,
	}
	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		slog.Error("failed to encode error response", "error", encodeErr)
	}
}
