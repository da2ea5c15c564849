package sandbox

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temboplus/afloat-go/api"
	"github.com/temboplus/afloat-go/events"
	"github.com/temboplus/afloat-go/permissions"
)

func TestSeed(t *testing.T) {
	srv, fx, bus, err := NewLocal([]byte("secret"), time.Hour, "password123")
	require.NoError(t, err)

	assert.Equal(t, "TZS", fx.Wallet.CurrencyCode)
	balance, err := srv.Store.Balance(fx.Profile.ID)
	require.NoError(t, err)
	assert.Equal(t, OpeningBalance, balance.Available)

	assert.Len(t, fx.Roles, 3)
	assert.Equal(t, len(permissions.Catalog()), len(fx.Roles["Admin"].Access))

	access, err := srv.Store.AccessFor(MakerIdentity)
	require.NoError(t, err)
	assert.Contains(t, access, string(permissions.PayoutCreate))
	assert.NotContains(t, access, string(permissions.PayoutApprove))

	assert.Equal(t, 1, bus.Subscribers(events.PayoutEventsStream))
}

func serve(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv, _, _, err := NewLocal([]byte("secret"), time.Hour, "password123")
	require.NoError(t, err)

	w := serve(srv.Router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(srv.Router, http.MethodPost, "/login", "", map[string]string{"identity": MakerIdentity, "password": "password123"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var login api.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	tests := []struct {
		name           string
		method, path   string
		token          string
		expectedStatus int
	}{
		{name: "no token", method: http.MethodGet, path: "/wallet/balance", expectedStatus: http.StatusUnauthorized},
		{name: "allowed", method: http.MethodGet, path: "/wallet/balance", token: login.Token, expectedStatus: http.StatusOK},
		{name: "statement needs its own permission", method: http.MethodGet, path: "/wallet/statement", token: login.Token, expectedStatus: http.StatusForbidden},
		{name: "approve gated", method: http.MethodPost, path: "/payouts/pay-1/approve", token: login.Token, expectedStatus: http.StatusForbidden},
		{name: "unknown payout", method: http.MethodGet, path: "/payouts/pay-1", token: login.Token, expectedStatus: http.StatusNotFound},
		{name: "access list", method: http.MethodGet, path: "/login/access-list", token: login.Token, expectedStatus: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(srv.Router, tt.method, tt.path, tt.token, nil)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
		})
	}
}
