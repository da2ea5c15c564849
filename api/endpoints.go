// Package api is the HTTP side of the library: the catalog of backend
// endpoints, a client that sends requests to them and the rules for turning
// a response status and body into a typed result or an *apierr.APIError.
package api

import (
	"net/http"
	"net/url"
	"slices"
	"strings"
)

// Endpoint describes one backend route and the statuses that mean success.
type Endpoint struct {
	Name    string
	Method  string
	Path    string
	Success []int
}

// IsSuccess reports whether status is one of the endpoint's success codes.
func (e Endpoint) IsSuccess(status int) bool {
	return slices.Contains(e.Success, status)
}

// Resolve fills ":name" placeholders in the path from params.
func (e Endpoint) Resolve(params map[string]string) string {
	if len(params) == 0 {
		return e.Path
	}
	segments := strings.Split(e.Path, "/")
	for i, seg := range segments {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			if v, ok := params[name]; ok {
				segments[i] = url.PathEscape(v)
			}
		}
	}
	return strings.Join(segments, "/")
}

var (
	statusOK      = []int{http.StatusOK}
	statusCreated = []int{http.StatusOK, http.StatusCreated}
	statusDeleted = []int{http.StatusOK, http.StatusNoContent}
)

// Session
var (
	Login          = Endpoint{Name: "login", Method: http.MethodPost, Path: "/login", Success: statusCreated}
	AccessList     = Endpoint{Name: "accessList", Method: http.MethodGet, Path: "/login/access-list", Success: statusOK}
	Profile        = Endpoint{Name: "profile", Method: http.MethodGet, Path: "/login/profile", Success: statusOK}
	Identity       = Endpoint{Name: "identity", Method: http.MethodGet, Path: "/login/identity", Success: statusOK}
	ChangePassword = Endpoint{Name: "changePassword", Method: http.MethodPut, Path: "/login/password", Success: statusOK}
)

// Contacts
var (
	ListContacts  = Endpoint{Name: "listContacts", Method: http.MethodGet, Path: "/contacts", Success: statusOK}
	GetContact    = Endpoint{Name: "getContact", Method: http.MethodGet, Path: "/contacts/:id", Success: statusOK}
	CreateContact = Endpoint{Name: "createContact", Method: http.MethodPost, Path: "/contacts", Success: statusCreated}
	UpdateContact = Endpoint{Name: "updateContact", Method: http.MethodPut, Path: "/contacts/:id", Success: statusOK}
	DeleteContact = Endpoint{Name: "deleteContact", Method: http.MethodDelete, Path: "/contacts/:id", Success: statusDeleted}
)

// Payouts
var (
	ListPayouts   = Endpoint{Name: "listPayouts", Method: http.MethodGet, Path: "/payouts", Success: statusOK}
	GetPayout     = Endpoint{Name: "getPayout", Method: http.MethodGet, Path: "/payouts/:id", Success: statusOK}
	CreatePayout  = Endpoint{Name: "createPayout", Method: http.MethodPost, Path: "/payouts", Success: statusCreated}
	ApprovePayout = Endpoint{Name: "approvePayout", Method: http.MethodPost, Path: "/payouts/:id/approve", Success: statusCreated}
	RejectPayout  = Endpoint{Name: "rejectPayout", Method: http.MethodPost, Path: "/payouts/:id/reject", Success: statusCreated}
)

// Wallet
var (
	GetWallet       = Endpoint{Name: "getWallet", Method: http.MethodGet, Path: "/wallet", Success: statusOK}
	WalletBalance   = Endpoint{Name: "walletBalance", Method: http.MethodGet, Path: "/wallet/balance", Success: statusOK}
	WalletStatement = Endpoint{Name: "walletStatement", Method: http.MethodGet, Path: "/wallet/statement", Success: statusOK}
)

// Roles and managed users
var (
	ListRoles  = Endpoint{Name: "listRoles", Method: http.MethodGet, Path: "/roles", Success: statusOK}
	GetRole    = Endpoint{Name: "getRole", Method: http.MethodGet, Path: "/roles/:id", Success: statusOK}
	ListUsers  = Endpoint{Name: "listUsers", Method: http.MethodGet, Path: "/users", Success: statusOK}
	GetUser    = Endpoint{Name: "getUser", Method: http.MethodGet, Path: "/users/:id", Success: statusOK}
	CreateUser = Endpoint{Name: "createUser", Method: http.MethodPost, Path: "/users", Success: statusCreated}
)

// Endpoints lists the catalog.
func Endpoints() []Endpoint {
	return []Endpoint{
		Login, AccessList, Profile, Identity, ChangePassword,
		ListContacts, GetContact, CreateContact, UpdateContact, DeleteContact,
		ListPayouts, GetPayout, CreatePayout, ApprovePayout, RejectPayout,
		GetWallet, WalletBalance, WalletStatement,
		ListRoles, GetRole, ListUsers, GetUser, CreateUser,
	}
}
