// Package repository is the permission-aware API layer. Every gated call
// checks the session's permissions before a request is built, so an
// unauthorized call fails with *apierr.PermissionError and never reaches the
// backend. Requests carry the session's bearer token.
package repository

import (
	"context"

	"github.com/temboplus/afloat-go/api"
	"github.com/temboplus/afloat-go/models"
	"github.com/temboplus/afloat-go/permissions"
)

// Session is the slice of the auth facade the repositories depend on. Both
// *auth.Auth and auth.ContextSession satisfy it.
type Session interface {
	api.Doer
	Require(ctx context.Context, perms ...permissions.Permission) error
	CurrentUser(ctx context.Context) (*models.User, error)
}

func byID(id string) map[string]string {
	return map[string]string{"id": id}
}
