package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/temboplus/afloat-go/api"
	"github.com/temboplus/afloat-go/apierr"
	"github.com/temboplus/afloat-go/auth"
	"github.com/temboplus/afloat-go/permissions"
)

const sessionKey = "afloat.session"

// ServerSession resolves the request's bearer token into a fresh server-side
// auth.Auth. The session is stored on the gin context and in the request's
// context.Context, where auth.FromContext and auth.ContextSession find it.
func ServerSession(doer api.Doer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := BearerToken(c)

		session, err := auth.InitializeServer(c.Request.Context(), doer, token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrEmptyToken):
				RespondWithError(c, http.StatusUnauthorized, "Authorization header required")
			case errors.Is(err, auth.ErrTokenExpired):
				RespondWithError(c, http.StatusUnauthorized, "Invalid or expired token")
			case apierr.StatusCode(err) == http.StatusBadGateway:
				log.Printf("ServerSession: backend unreachable: %v", err)
				RespondWithError(c, http.StatusBadGateway, "Service unavailable")
			default:
				log.Printf("ServerSession: failed to resolve session: %v", err)
				RespondWithError(c, http.StatusUnauthorized, "Invalid or expired token")
			}
			c.Abort()
			return
		}

		c.Set(sessionKey, session)
		c.Request = c.Request.WithContext(auth.WithAuth(c.Request.Context(), session))
		c.Next()
	}
}

// SessionFrom returns the session ServerSession attached to c.
func SessionFrom(c *gin.Context) (*auth.Auth, bool) {
	v, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}
	session, ok := v.(*auth.Auth)
	return session, ok
}

// RequirePermission rejects the request with 403 unless the session holds
// every one of perms. It must run after ServerSession.
func RequirePermission(perms ...permissions.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := SessionFrom(c)
		if !ok {
			RespondWithError(c, http.StatusUnauthorized, "Authorization header required")
			c.Abort()
			return
		}
		if err := session.Require(c.Request.Context(), perms...); err != nil {
			RespondWithAPIError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}
