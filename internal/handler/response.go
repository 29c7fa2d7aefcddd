package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sakif/skillup/internal/apperror"
	"github.com/sakif/skillup/internal/logger"
)

// Every API response is one of these two envelopes.
type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type errorEnvelope struct {
	Success bool     `json:"success"`
	Error   apiError `json:"error"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes exposed to clients.
const (
	CodeUnauthorized = "UNAUTHORIZED"
	CodeInvalidInput = "INVALID_INPUT"
	CodePathNotFound = "PATH_NOT_FOUND"
	CodeNotFound     = "NOT_FOUND"
	CodeForbidden    = "FORBIDDEN"
	CodeInternal     = "INTERNAL_ERROR"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func writeSuccess(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, successEnvelope{Success: true, Data: data})
}

// classify maps an error onto an HTTP status and client code. The bool
// reports whether the AppError message is safe to show.
func classify(err error) (int, string, bool) {
	switch {
	case errors.Is(err, apperror.ErrUnauthenticated):
		return http.StatusUnauthorized, CodeUnauthorized, true
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusBadRequest, CodeInvalidInput, true
	case errors.Is(err, apperror.ErrPathNotFound):
		return http.StatusNotFound, CodePathNotFound, true
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound, CodeNotFound, true
	case errors.Is(err, apperror.ErrForbidden):
		return http.StatusForbidden, CodeForbidden, true
	default:
		return http.StatusInternalServerError, CodeInternal, false
	}
}

// writeError sends the error envelope. Domain errors carry their own
// message; anything else becomes INTERNAL_ERROR with fallback as the
// message, and the cause is logged server-side only.
func writeError(w http.ResponseWriter, r *http.Request, logg *logger.Logger, err error, fallback string) {
	status, code, public := classify(err)

	message := fallback
	var appErr *apperror.AppError
	if public && errors.As(err, &appErr) && appErr.Message != "" {
		message = appErr.Message
	}

	if status >= http.StatusInternalServerError {
		logg.Error(r.Context(), fallback, err)
	}

	writeJSON(w, status, errorEnvelope{
		Error: apiError{Code: code, Message: message},
	})
}

// APINotFound answers unknown /api routes with the error envelope.
func APINotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, errorEnvelope{
		Error: apiError{Code: CodeNotFound, Message: "Route not found"},
	})
}
