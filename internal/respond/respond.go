// Package respond writes the relay's JSON response envelopes.
// Every response body carries an RFC 3339 UTC timestamp.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// SuccessBody is the envelope for successful operations.
type SuccessBody struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Timestamp string `json:"timestamp"`
}

// ErrorBody is the envelope for failed operations. Stack is only populated
// in development mode.
type ErrorBody struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Stack     string `json:"stack,omitempty"`
	Timestamp string `json:"timestamp"`
}

// NotFoundBody is the envelope for unmatched routes.
type NotFoundBody struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Timestamp returns the current time formatted for response envelopes.
func Timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// The status line is already out; nothing left to do but log.
		slog.Default().Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// Success writes a success envelope.
func Success(w http.ResponseWriter, status int, message string, data any) {
	JSON(w, status, SuccessBody{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: Timestamp(),
	})
}

// Error writes an error envelope. Pass a non-empty stack only in
// development mode.
func Error(w http.ResponseWriter, status int, message, stack string) {
	JSON(w, status, ErrorBody{
		Success:   false,
		Error:     message,
		Stack:     stack,
		Timestamp: Timestamp(),
	})
}

// NotFound writes the envelope for unmatched routes.
func NotFound(w http.ResponseWriter, message string) {
	JSON(w, http.StatusNotFound, NotFoundBody{
		Error:     http.StatusText(http.StatusNotFound),
		Message:   message,
		Timestamp: Timestamp(),
	})
}
