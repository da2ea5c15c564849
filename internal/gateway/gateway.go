// Package gateway is a reverse proxy in front of the Afloat API that
// resolves each caller's session and checks permissions before forwarding.
package gateway

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/temboplus/afloat-go/api"
	"github.com/temboplus/afloat-go/middleware"
	"github.com/temboplus/afloat-go/permissions"
)

// IdentityHeader carries the resolved caller to the upstream.
const IdentityHeader = "X-Afloat-Identity"

// Guards maps endpoint names to the permissions a caller needs. Endpoints
// without an entry only need a valid session; Login needs nothing.
var Guards = map[string][]permissions.Permission{
	api.ListContacts.Name:    {permissions.ContactView},
	api.GetContact.Name:      {permissions.ContactView},
	api.CreateContact.Name:   {permissions.ContactCreate},
	api.UpdateContact.Name:   {permissions.ContactUpdate},
	api.DeleteContact.Name:   {permissions.ContactDelete},
	api.ListPayouts.Name:     {permissions.PayoutView},
	api.GetPayout.Name:       {permissions.PayoutView},
	api.CreatePayout.Name:    {permissions.PayoutCreate},
	api.ApprovePayout.Name:   {permissions.PayoutApprove},
	api.RejectPayout.Name:    {permissions.PayoutApprove},
	api.GetWallet.Name:       {permissions.WalletViewBalance},
	api.WalletBalance.Name:   {permissions.WalletViewBalance},
	api.WalletStatement.Name: {permissions.WalletViewStatement},
	api.ListRoles.Name:       {permissions.RoleView},
	api.GetRole.Name:         {permissions.RoleView},
	api.ListUsers.Name:       {permissions.UserView},
	api.GetUser.Name:         {permissions.UserView},
	api.CreateUser.Name:      {permissions.UserCreate},
}

// NewRouter proxies every catalog endpoint to upstream. Session lookups go
// through doer, which must reach the same backend.
func NewRouter(upstream string, doer api.Doer, client *http.Client) *gin.Engine {
	upstream = strings.TrimSuffix(upstream, "/")
	if client == nil {
		client = http.DefaultClient
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.LoggingMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "afloat-gateway"})
	})

	proxy := proxyTo(upstream, client)
	for _, ep := range api.Endpoints() {
		if ep.Name == api.Login.Name {
			router.Handle(ep.Method, ep.Path, proxy)
			continue
		}
		chain := []gin.HandlerFunc{middleware.ServerSession(doer)}
		if perms := Guards[ep.Name]; len(perms) > 0 {
			chain = append(chain, middleware.RequirePermission(perms...))
		}
		router.Handle(ep.Method, ep.Path, append(chain, proxy)...)
	}
	return router
}

func proxyTo(upstream string, client *http.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		targetURL := upstream + c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			targetURL += "?" + c.Request.URL.RawQuery
		}

		var bodyBytes []byte
		if c.Request.Body != nil {
			var err error
			if bodyBytes, err = io.ReadAll(c.Request.Body); err != nil {
				log.Printf("Gateway: failed to read request body: %v", err)
				middleware.RespondWithError(c, http.StatusBadRequest, "Failed to read request body")
				return
			}
		}

		req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, targetURL, bytes.NewReader(bodyBytes))
		if err != nil {
			middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to create request")
			return
		}
		for key, values := range c.Request.Header {
			for _, value := range values {
				req.Header.Add(key, value)
			}
		}
		req.Header.Del(IdentityHeader)
		if session, ok := middleware.SessionFrom(c); ok {
			if user, err := session.CurrentUser(c.Request.Context()); err == nil && user != nil {
				req.Header.Set(IdentityHeader, user.Identity())
			}
		}

		resp, err := client.Do(req)
		if err != nil {
			log.Printf("Gateway: error proxying request: %v", err)
			middleware.RespondWithError(c, http.StatusBadGateway, "Service unavailable")
			return
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			middleware.RespondWithError(c, http.StatusBadGateway, "Failed to read response")
			return
		}
		for key, values := range resp.Header {
			for _, value := range values {
				c.Header(key, value)
			}
		}
		c.Data(resp.StatusCode, resp.Header.Get("Content-Type"), respBody)
	}
}
