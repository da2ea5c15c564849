// Package apierr holds the error types surfaced by the API layer: failures
// reported by the backend and capability checks refused before a request is
// ever sent.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/temboplus/afloat-go/permissions"
)

// StatusUnknown is the status synthesized for failures whose shape is not
// recognized. It mirrors Cloudflare's "unknown error" code.
const StatusUnknown = 520

// APIError is a failure reported by, or synthesized for, the backend.
type APIError struct {
	StatusCode int            `json:"statusCode"`
	Message    string         `json:"message"`
	Code       string         `json:"error,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *APIError) Unwrap() error {
	return e.Cause
}

// Unknown wraps a failure that did not match any recognized response shape.
func Unknown(cause error) *APIError {
	return &APIError{
		StatusCode: StatusUnknown,
		Message:    "An unknown error occurred",
		Code:       "Unknown Error",
		Cause:      cause,
	}
}

// BadGateway wraps a failure to reach the backend at all.
func BadGateway(cause error) *APIError {
	return &APIError{
		StatusCode: http.StatusBadGateway,
		Message:    "The service is unreachable",
		Code:       http.StatusText(http.StatusBadGateway),
		Cause:      cause,
	}
}

// StatusCode extracts the status of an *APIError in err's chain, 0 otherwise.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// PermissionError is returned when the current user lacks a capability.
// It is raised before any request is sent.
type PermissionError struct {
	Required []permissions.Permission
}

// NewPermissionError reports that every one of required was needed.
func NewPermissionError(required ...permissions.Permission) *PermissionError {
	return &PermissionError{Required: required}
}

func (e *PermissionError) Error() string {
	names := make([]string, len(e.Required))
	for i, p := range e.Required {
		names[i] = string(p)
	}
	return "permission denied: requires " + strings.Join(names, ", ")
}

// IsPermissionError reports whether err is, or wraps, a *PermissionError.
func IsPermissionError(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}
