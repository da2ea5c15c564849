package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/temboplus/afloat-go/permissions"
)

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{StatusCode: 400, Message: "amount is required", Code: "Bad Request"}
	assert.Equal(t, "api error 400 (Bad Request): amount is required", err.Error())

	plain := &APIError{StatusCode: 404, Message: "not found"}
	assert.Equal(t, "api error 404: not found", plain.Error())
}

func TestUnknownAndBadGateway(t *testing.T) {
	cause := errors.New("boom")

	unknown := Unknown(cause)
	assert.Equal(t, StatusUnknown, unknown.StatusCode)
	assert.ErrorIs(t, unknown, cause)

	gw := BadGateway(cause)
	assert.Equal(t, http.StatusBadGateway, gw.StatusCode)
	assert.Equal(t, http.StatusBadGateway, StatusCode(fmt.Errorf("wrapped: %w", gw)))
	assert.Equal(t, 0, StatusCode(cause))
}

func TestPermissionError(t *testing.T) {
	err := NewPermissionError(permissions.PayoutApprove, permissions.PayoutView)
	assert.Equal(t, "permission denied: requires payout.approve, payout.view", err.Error())
	assert.True(t, IsPermissionError(fmt.Errorf("approve: %w", err)))
	assert.False(t, IsPermissionError(errors.New("other")))
}
