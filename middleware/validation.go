// Package middleware holds the gin helpers shared by servers built on this
// library: request validation and error responses in the backend's error
// shape, bearer-token checks and the per-request server session.
package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/temboplus/afloat-go/apierr"
	"github.com/temboplus/afloat-go/schema"
)

// ErrorResponse is the error body clients decode into an *apierr.APIError.
type ErrorResponse struct {
	StatusCode int            `json:"statusCode"`
	Message    string         `json:"message"`
	Error      string         `json:"error"`
	Details    map[string]any `json:"details,omitempty"`
}

func ValidateRequest(obj any) []schema.FieldError {
	return schema.Errors(obj)
}

func RespondWithValidationError(c *gin.Context, validationErrors []schema.FieldError) {
	details := make(map[string]any, len(validationErrors))
	for _, fe := range validationErrors {
		details[fe.Field] = fe.Message
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{
		StatusCode: http.StatusBadRequest,
		Message:    "Invalid request data",
		Error:      http.StatusText(http.StatusBadRequest),
		Details:    details,
	})
}

func RespondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{
		StatusCode: code,
		Message:    message,
		Error:      http.StatusText(code),
	})
}

// RespondWithAPIError maps an error from this library onto a response.
func RespondWithAPIError(c *gin.Context, err error) {
	var (
		permErr  *apierr.PermissionError
		validErr *schema.ValidationError
		apiErr   *apierr.APIError
	)
	switch {
	case errors.As(err, &permErr):
		RespondWithError(c, http.StatusForbidden, permErr.Error())
	case errors.As(err, &validErr):
		RespondWithValidationError(c, validErr.Details)
	case errors.As(err, &apiErr):
		c.JSON(apiErr.StatusCode, ErrorResponse{
			StatusCode: apiErr.StatusCode,
			Message:    apiErr.Message,
			Error:      apiErr.Code,
			Details:    apiErr.Details,
		})
	default:
		RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
