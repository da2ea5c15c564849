package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temboplus/afloat-go/api"
	"github.com/temboplus/afloat-go/cqrs"
	"github.com/temboplus/afloat-go/internal/sandbox/command"
	"github.com/temboplus/afloat-go/internal/sandbox/query"
	"github.com/temboplus/afloat-go/internal/sandbox/repository"
	"github.com/temboplus/afloat-go/middleware"
	"github.com/temboplus/afloat-go/models"
	"github.com/temboplus/afloat-go/permissions"
)

// ---- mock implementations ----

type mockPayoutCommander struct {
	createFn  func(models.Actor, api.PayoutRequest) (models.Payout, error)
	approveFn func(id string, notes *string) (models.Payout, error)
}

func (m *mockPayoutCommander) CreatePayout(_ context.Context, _ string, actor models.Actor, req api.PayoutRequest) (models.Payout, error) {
	if m.createFn != nil {
		return m.createFn(actor, req)
	}
	return models.Payout{}, fmt.Errorf("not configured")
}

func (m *mockPayoutCommander) ApprovePayout(_ context.Context, _, id string, _ models.Actor, notes *string) (models.Payout, error) {
	if m.approveFn != nil {
		return m.approveFn(id, notes)
	}
	return models.Payout{}, fmt.Errorf("not configured")
}

func (m *mockPayoutCommander) RejectPayout(context.Context, string, string, models.Actor, *string) (models.Payout, error) {
	return models.Payout{}, fmt.Errorf("not configured")
}

type mockPayoutQuerier struct {
	getFn  func(profileID, id string) (models.Payout, error)
	listFn func(profileID string, f repository.PayoutFilter) api.PayoutPage
}

func (m *mockPayoutQuerier) GetPayout(profileID, id string) (models.Payout, error) {
	if m.getFn != nil {
		return m.getFn(profileID, id)
	}
	return models.Payout{}, fmt.Errorf("not configured")
}

func (m *mockPayoutQuerier) ListPayouts(profileID string, f repository.PayoutFilter) api.PayoutPage {
	if m.listFn != nil {
		return m.listFn(profileID, f)
	}
	return api.PayoutPage{}
}

type mockMembers struct {
	access map[string][]string
}

func (m *mockMembers) AccessFor(identity string) ([]string, error) {
	access, ok := m.access[identity]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return access, nil
}

func (m *mockMembers) MemberFor(identity string) (models.ManagedUser, error) {
	return models.ManagedUser{ID: "usr-" + identity, Name: "Musa Maker", Identity: identity}, nil
}

type mockWalletQuerier struct {
	statementFn func(from, to time.Time) ([]models.StatementEntry, error)
}

func (m *mockWalletQuerier) GetWallet(string) (models.Wallet, error) {
	return models.Wallet{}, repository.ErrNotFound
}

func (m *mockWalletQuerier) GetBalance(string) (models.WalletBalance, error) {
	return models.WalletBalance{Available: 100, CurrencyCode: "TZS"}, nil
}

func (m *mockWalletQuerier) GetStatement(_ string, from, to time.Time) ([]models.StatementEntry, error) {
	if m.statementFn != nil {
		return m.statementFn(from, to)
	}
	return nil, fmt.Errorf("not configured")
}

type mockSessionQuerier struct {
	loginFn func(cqrs.LoginCommand) (api.LoginResponse, error)
}

func (m *mockSessionQuerier) Login(cmd cqrs.LoginCommand) (api.LoginResponse, error) {
	if m.loginFn != nil {
		return m.loginFn(cmd)
	}
	return api.LoginResponse{}, fmt.Errorf("not configured")
}

func (m *mockSessionQuerier) AccessList(string) ([]string, error) { return []string{"payout.view"}, nil }
func (m *mockSessionQuerier) Profile(string) (models.Profile, error) {
	return models.Profile{}, repository.ErrNotFound
}
func (m *mockSessionQuerier) Identity(id string) (api.IdentityResponse, error) {
	return api.IdentityResponse{Identity: id}, nil
}

type mockPasswordChanger struct {
	err error
}

func (m *mockPasswordChanger) ChangePassword(context.Context, string, cqrs.ResetPasswordCommand) error {
	return m.err
}

// ---- helpers ----

func fakeAuth(identity string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("identity", identity)
		c.Set("profileId", "prf-1")
		c.Next()
	}
}

func doRequest(router *gin.Engine, method, url string, body any) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, nil)
	if body != nil {
		b, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, url, strings.NewReader(string(b)))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) middleware.ErrorResponse {
	t.Helper()
	var resp middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func newPayoutRouter(cmds PayoutCommander, qrys PayoutQuerier, members Members, identity string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(fakeAuth(identity))
	h := NewPayoutHandler(cmds, qrys, members)
	r.GET("/payouts", h.ListPayouts)
	r.GET("/payouts/:id", h.GetPayout)
	r.POST("/payouts", RequireAccess(members, permissions.PayoutCreate), h.CreatePayout)
	r.POST("/payouts/:id/approve", RequireAccess(members, permissions.PayoutApprove), h.ApprovePayout)
	return r
}

func payoutBody() map[string]any {
	return map[string]any{
		"payeeName": "Jane Doe", "channel": "TZ-TIGO-B2C", "msisdn": "255754123456",
		"amount": 5000, "description": "PAYOUT TO MOBILE +255754123456 JANE DOE",
	}
}

// ---- tests ----

func TestCreatePayout(t *testing.T) {
	members := &mockMembers{access: map[string][]string{
		"maker@x.com":  {"payout.create"},
		"viewer@x.com": {"payout.view"},
	}}
	tests := []struct {
		name           string
		identity       string
		body           any
		createFn       func(models.Actor, api.PayoutRequest) (models.Payout, error)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:     "success",
			identity: "maker@x.com",
			body:     payoutBody(),
			createFn: func(a models.Actor, req api.PayoutRequest) (models.Payout, error) {
				if a.Identity != "maker@x.com" || req.Amount != 5000 {
					return models.Payout{}, fmt.Errorf("unexpected input %+v %+v", a, req)
				}
				return models.Payout{ID: "pay-1", Amount: req.Amount}, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing permission",
			identity:       "viewer@x.com",
			body:           payoutBody(),
			expectedStatus: http.StatusForbidden,
			expectedMsg:    "payout.create",
		},
		{
			name:           "unknown account",
			identity:       "ghost@x.com",
			body:           payoutBody(),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:     "validation error",
			identity: "maker@x.com",
			body: func() map[string]any {
				b := payoutBody()
				delete(b, "msisdn")
				return b
			}(),
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request data",
		},
		{
			name:     "insufficient funds",
			identity: "maker@x.com",
			body:     payoutBody(),
			createFn: func(models.Actor, api.PayoutRequest) (models.Payout, error) {
				return models.Payout{}, repository.ErrInsufficientFunds
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "insufficient funds",
		},
		{
			name:     "unexpected failure",
			identity: "maker@x.com",
			body:     payoutBody(),
			createFn: func(models.Actor, api.PayoutRequest) (models.Payout, error) {
				return models.Payout{}, fmt.Errorf("disk on fire")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Failed to create payout",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newPayoutRouter(&mockPayoutCommander{createFn: tt.createFn}, &mockPayoutQuerier{}, members, tt.identity)
			w := doRequest(router, http.MethodPost, "/payouts", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.expectedMsg != "" {
				assert.Contains(t, decodeError(t, w).Message, tt.expectedMsg)
			}
		})
	}
}

func TestApprovePayout(t *testing.T) {
	members := &mockMembers{access: map[string][]string{"approver@x.com": {"payout.approve"}}}
	var gotNotes *string
	cmds := &mockPayoutCommander{approveFn: func(id string, notes *string) (models.Payout, error) {
		gotNotes = notes
		if id == "missing" {
			return models.Payout{}, repository.ErrNotFound
		}
		if id == "done" {
			return models.Payout{}, command.ErrNotActionable
		}
		return models.Payout{ID: id, ApprovalStatus: models.ApprovalApproved}, nil
	}}
	router := newPayoutRouter(cmds, &mockPayoutQuerier{}, members, "approver@x.com")

	w := doRequest(router, http.MethodPost, "/payouts/pay-1/approve", map[string]any{"notes": "looks good"})
	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, gotNotes)
	assert.Equal(t, "looks good", *gotNotes)

	w = doRequest(router, http.MethodPost, "/payouts/pay-1/approve", nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Nil(t, gotNotes)

	w = doRequest(router, http.MethodPost, "/payouts/missing/approve", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Payout not found", decodeError(t, w).Message)

	w = doRequest(router, http.MethodPost, "/payouts/done/approve", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, command.ErrNotActionable.Error(), decodeError(t, w).Message)
}

func TestListPayoutsQuery(t *testing.T) {
	var got repository.PayoutFilter
	qrys := &mockPayoutQuerier{listFn: func(_ string, f repository.PayoutFilter) api.PayoutPage {
		got = f
		return api.PayoutPage{Results: []models.Payout{}, Page: f.Page, Limit: f.Limit}
	}}
	router := newPayoutRouter(&mockPayoutCommander{}, qrys, &mockMembers{}, "x")

	tests := []struct {
		name           string
		url            string
		expectedStatus int
		expected       repository.PayoutFilter
	}{
		{name: "defaults", url: "/payouts", expectedStatus: http.StatusOK},
		{name: "filtered", url: "/payouts?approvalStatus=Pending&page=2&limit=5", expectedStatus: http.StatusOK,
			expected: repository.PayoutFilter{Approval: models.ApprovalPending, Page: 2, Limit: 5}},
		{name: "bad approval", url: "/payouts?approvalStatus=Maybe", expectedStatus: http.StatusBadRequest},
		{name: "bad page", url: "/payouts?page=-1", expectedStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got = repository.PayoutFilter{}
			w := doRequest(router, http.MethodGet, tt.url, nil)
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestWalletStatement(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var from, to time.Time
	h := NewWalletHandler(&mockWalletQuerier{statementFn: func(f, tt time.Time) ([]models.StatementEntry, error) {
		from, to = f, tt
		return []models.StatementEntry{}, nil
	}})
	r := gin.New()
	r.Use(fakeAuth("x"))
	r.GET("/wallet", h.GetWallet)
	r.GET("/wallet/balance", h.GetBalance)
	r.GET("/wallet/statement", h.GetStatement)

	w := doRequest(r, http.MethodGet, "/wallet/statement?startDate=2024-01-01T00:00:00Z&endDate=2024-01-31T00:00:00Z", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2024, from.Year())
	assert.Equal(t, 31, to.Day())

	w = doRequest(r, http.MethodGet, "/wallet/statement?startDate=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "startDate must be an RFC3339 timestamp", decodeError(t, w).Details["startDate"])

	w = doRequest(r, http.MethodGet, "/wallet/statement?startDate=2024-02-01T00:00:00Z&endDate=2024-01-01T00:00:00Z", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w).Details, "endDate")

	w = doRequest(r, http.MethodGet, "/wallet/balance", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"availableBalance":100,"currencyCode":"TZS","updatedAt":"0001-01-01T00:00:00Z"}`, w.Body.String())

	w = doRequest(r, http.MethodGet, "/wallet", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	qrys := &mockSessionQuerier{loginFn: func(cmd cqrs.LoginCommand) (api.LoginResponse, error) {
		if cmd.Password != "secret" {
			return api.LoginResponse{}, query.ErrInvalidCredentials
		}
		return api.LoginResponse{Token: "tok", Access: []string{}}, nil
	}}
	passwords := &mockPasswordChanger{}
	h := NewSessionHandler(qrys, passwords)
	r := gin.New()
	r.POST("/login", h.Login)
	authed := r.Group("", fakeAuth("a@b.com"))
	authed.GET("/login/identity", h.Identity)
	authed.GET("/login/profile", h.Profile)
	authed.PUT("/login/password", h.ChangePassword)

	tests := []struct {
		name           string
		method, url    string
		body           any
		passwordErr    error
		expectedStatus int
	}{
		{name: "login", method: http.MethodPost, url: "/login", body: map[string]string{"identity": "a@b.com", "password": "secret"}, expectedStatus: http.StatusCreated},
		{name: "bad credentials", method: http.MethodPost, url: "/login", body: map[string]string{"identity": "a@b.com", "password": "nope"}, expectedStatus: http.StatusBadRequest},
		{name: "missing password", method: http.MethodPost, url: "/login", body: map[string]string{"identity": "a@b.com"}, expectedStatus: http.StatusBadRequest},
		{name: "identity", method: http.MethodGet, url: "/login/identity", expectedStatus: http.StatusOK},
		{name: "profile missing", method: http.MethodGet, url: "/login/profile", expectedStatus: http.StatusNotFound},
		{name: "password changed", method: http.MethodPut, url: "/login/password", body: map[string]string{"currentPassword": "secret", "newPassword": "new-secret"}, expectedStatus: http.StatusOK},
		{name: "password too short", method: http.MethodPut, url: "/login/password", body: map[string]string{"currentPassword": "secret", "newPassword": "short"}, expectedStatus: http.StatusBadRequest},
		{name: "wrong current password", method: http.MethodPut, url: "/login/password", body: map[string]string{"currentPassword": "nope", "newPassword": "new-secret"}, passwordErr: command.ErrInvalidPassword, expectedStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			passwords.err = tt.passwordErr
			w := doRequest(r, tt.method, tt.url, tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
		})
	}
}
