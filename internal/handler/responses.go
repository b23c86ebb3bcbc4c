package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/devaliuz/Epic-Charaktersheet/internal/domain"
	"github.com/devaliuz/Epic-Charaktersheet/internal/logger"
)

// Standard response types for consistent API responses

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteErrorResponse is the error body of character writes.
type WriteErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// SuccessResponse acknowledges a write without further data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// bufferPool is a pool of bytes.Buffer to reduce allocations during JSON encoding
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	// Encode first so an encoding failure can still become a 500.
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + ErrMsgGenericServerError + `"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps a service error onto a status and writes it. For
// unexpected failures the message is the operation prefix plus the error text.
func respondServiceError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	status, message := serviceErrorResponse(r, operation, err)
	respondError(w, status, message)
}

// respondWriteError is respondServiceError for the character write
// endpoints, whose error bodies carry success:false.
func respondWriteError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	status, message := serviceErrorResponse(r, operation, err)
	respondJSON(w, status, WriteErrorResponse{Success: false, Error: message})
}

func serviceErrorResponse(r *http.Request, operation string, err error) (int, string) {
	log := logger.FromContext(r.Context())
	status, message := mapServiceErrorToUserMessage(err)
	switch {
	case status >= http.StatusInternalServerError:
		log.Error(operation+" failed", "error", err)
		message = operation + ": " + err.Error()
	case status == http.StatusBadRequest:
		log.Warn(operation+" rejected", "error", err)
		message = err.Error()
	default:
		log.Debug(operation+" refused", "status", status, "error", err)
	}
	return status, message
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and
// the message shown to the user.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge, ErrMsgRequestTooLarge

	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, domain.ErrMsgUnauthenticated
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, domain.ErrMsgInvalidCredentials
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, domain.ErrMsgForbidden
	case errors.Is(err, domain.ErrAdminRequired):
		return http.StatusForbidden, domain.ErrMsgAdminRequired

	case errors.Is(err, domain.ErrCharacterNotFound):
		return http.StatusNotFound, domain.ErrMsgCharacterNotFound
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, domain.ErrMsgSessionNotFound
	case errors.Is(err, domain.ErrSnapshotNotFound):
		return http.StatusNotFound, domain.ErrMsgSnapshotNotFound

	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusConflict, domain.ErrMsgUsernameTaken
	case errors.Is(err, domain.ErrSessionAlreadyActive):
		return http.StatusConflict, domain.ErrMsgSessionAlreadyActive
	case errors.Is(err, domain.ErrVersionConflict):
		return http.StatusConflict, domain.ErrMsgVersionConflict

	case errors.Is(err, domain.ErrMissingCredentials):
		return http.StatusBadRequest, domain.ErrMsgMissingCredentials
	case errors.Is(err, domain.ErrInvalidPayload),
		errors.Is(err, domain.ErrItemNameMissing),
		errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrSkillNameMissing),
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusBadRequest, ErrMsgInvalidRequestSummary

	case errors.Is(err, domain.ErrDatabaseError):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
