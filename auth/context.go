package auth

import (
	"context"
	"fmt"

	"github.com/temboplus/afloat-go/api"
	"github.com/temboplus/afloat-go/apierr"
	"github.com/temboplus/afloat-go/models"
	"github.com/temboplus/afloat-go/permissions"
)

type contextKey struct{}

// WithAuth returns a copy of ctx carrying a.
func WithAuth(ctx context.Context, a *Auth) context.Context {
	return context.WithValue(ctx, contextKey{}, a)
}

// FromContext returns the session stored by WithAuth.
func FromContext(ctx context.Context) (*Auth, bool) {
	a, ok := ctx.Value(contextKey{}).(*Auth)
	return a, ok && a != nil
}

// ContextSession resolves the session from each call's context. It lets a
// repository built once serve many requests, each with its own Auth.
type ContextSession struct{}

// Require fails with an *apierr.PermissionError, also matching
// ErrNotAuthenticated, when ctx carries no session.
func (ContextSession) Require(ctx context.Context, perms ...permissions.Permission) error {
	a, ok := FromContext(ctx)
	if !ok {
		return fmt.Errorf("%w: %w", ErrNotAuthenticated, apierr.NewPermissionError(perms...))
	}
	return a.Require(ctx, perms...)
}

func (ContextSession) Do(ctx context.Context, req api.Request) (*api.Response, error) {
	a, ok := FromContext(ctx)
	if !ok {
		return nil, ErrNotAuthenticated
	}
	return a.Do(ctx, req)
}

func (ContextSession) CurrentUser(ctx context.Context) (*models.User, error) {
	a, ok := FromContext(ctx)
	if !ok {
		return nil, nil
	}
	return a.CurrentUser(ctx)
}
