// Package handler exposes the sandbox's command and query services over
// gin, in the request and error shapes the client library expects.
package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/temboplus/afloat-go/apierr"
	"github.com/temboplus/afloat-go/internal/sandbox/command"
	"github.com/temboplus/afloat-go/internal/sandbox/query"
	"github.com/temboplus/afloat-go/internal/sandbox/repository"
	"github.com/temboplus/afloat-go/middleware"
	"github.com/temboplus/afloat-go/models"
	"github.com/temboplus/afloat-go/permissions"
)

// Business rule failures are reported as 400 so clients surface the message.
var badRequest = []error{
	repository.ErrInsufficientFunds,
	command.ErrInvalidDestination,
	command.ErrUnknownChannel,
	command.ErrAmountTooLow,
	command.ErrNotActionable,
	command.ErrUnknownRole,
	command.ErrInvalidPassword,
	query.ErrInvalidCredentials,
}

func respondError(c *gin.Context, err error, resource, fallback string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, resource+" not found")
		return
	case errors.Is(err, repository.ErrConflict):
		middleware.RespondWithError(c, http.StatusBadRequest, resource+" already exists")
		return
	}
	for _, target := range badRequest {
		if errors.Is(err, target) {
			middleware.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
	}
	log.Printf("Handler: %s: %v", fallback, err)
	middleware.RespondWithError(c, http.StatusInternalServerError, fallback)
}

// bindJSON decodes and validates the body into req, responding on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return false
	}
	return true
}

func profileID(c *gin.Context) string {
	id, _ := middleware.GetProfileID(c)
	return id
}

func identity(c *gin.Context) string {
	id, _ := middleware.GetIdentity(c)
	return id
}

// Members resolves the team member behind a login identity.
type Members interface {
	AccessFor(identity string) ([]string, error)
	MemberFor(identity string) (models.ManagedUser, error)
}

// RequireAccess rejects the request with 403 unless the caller's access
// list holds every one of perms. It must run after middleware.AuthMiddleware.
func RequireAccess(members Members, perms ...permissions.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		access, err := members.AccessFor(identity(c))
		if err != nil {
			middleware.RespondWithError(c, http.StatusUnauthorized, "Unknown account")
			c.Abort()
			return
		}
		granted := permissions.FromAccessList(access)
		var missing []permissions.Permission
		for _, p := range perms {
			if !granted.Has(p) {
				missing = append(missing, p)
			}
		}
		if len(missing) > 0 {
			middleware.RespondWithAPIError(c, apierr.NewPermissionError(missing...))
			c.Abort()
			return
		}
		c.Next()
	}
}

func actor(members Members, c *gin.Context) models.Actor {
	id := identity(c)
	member, err := members.MemberFor(id)
	if err != nil {
		return models.Actor{Identity: id}
	}
	return models.Actor{ID: member.ID, Name: member.Name, Identity: member.Identity}
}
