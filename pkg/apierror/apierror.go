// Package apierror defines the failure kinds surfaced at the request boundary
// and how they are rendered as JSON.
package apierror

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// Failure kinds. Wrapped errors match these with errors.Is.
var (
	// ErrDataAccess indicates a query or connection failure.
	ErrDataAccess = errors.New("data access error")

	// ErrDecoding indicates a stored row did not match the expected shape.
	ErrDecoding = errors.New("decoding error")

	// ErrIntegrity indicates the stored data violates a structural invariant,
	// such as a region referencing a missing parent.
	ErrIntegrity = errors.New("integrity error")

	// ErrNotFound indicates the requested id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates missing or rejected credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTooManyRequests indicates the caller is on a login cooldown.
	ErrTooManyRequests = errors.New("too many requests")
)

// Error carries a human readable message and the underlying cause.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// Wrap attaches a kind and message to cause.
func Wrap(kind error, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// DataAccess is shorthand for Wrap(ErrDataAccess, ...).
func DataAccess(message string, cause error) *Error {
	return Wrap(ErrDataAccess, message, cause)
}

// Integrity is shorthand for Wrap(ErrIntegrity, ...).
func Integrity(message string, cause error) *Error {
	return Wrap(ErrIntegrity, message, cause)
}

// NotFound is shorthand for Wrap(ErrNotFound, ...).
func NotFound(message string, cause error) *Error {
	return Wrap(ErrNotFound, message, cause)
}

// Body is the JSON shape of every error response.
type Body struct {
	Message string `json:"message"`
	Cause   string `json:"cause"`
}

// StatusCode maps an error to the HTTP status it is reported with.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// BodyFor builds the response body for err.
func BodyFor(err error) Body {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		body := Body{Message: apiErr.Message}
		if apiErr.Cause != nil {
			body.Cause = apiErr.Cause.Error()
		}
		return body
	}
	return Body{Message: "Internal server error", Cause: err.Error()}
}

// Write renders err as a JSON error response and logs it.
func Write(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := StatusCode(err)
	if logger != nil {
		level := slog.LevelError
		if status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		logger.Log(r.Context(), level, "Request failed",
			"path", r.URL.Path,
			"status", status,
			"error", err,
		)
	}
	WriteJSON(w, status, BodyFor(err))
}

// WriteJSON encodes v with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
