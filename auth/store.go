// Package auth holds the signed-in session: who the user is, the bearer
// token their requests carry and what they may do. The same Auth facade
// serves a long-lived client session and a single server request; only the
// Store and TokenHandler behind it differ.
package auth

import (
	"context"
	"errors"

	"github.com/temboplus/afloat-go/models"
)

var (
	ErrEmptyToken       = errors.New("auth: token is empty")
	ErrTokenExpired     = errors.New("auth: token has expired")
	ErrNotAuthenticated = errors.New("auth: not signed in")
)

// Store keeps the current user.
type Store interface {
	// User returns the current user, nil when signed out.
	User(ctx context.Context) (*models.User, error)
	// SetUser replaces the current user; nil signs out.
	SetUser(ctx context.Context, user *models.User) error
	// Refresh reloads the user from the backing medium and notifies
	// observers.
	Refresh(ctx context.Context) error
}

// TokenHandler keeps the bearer token.
type TokenHandler interface {
	// UserToken returns the token, "" when there is none.
	UserToken(ctx context.Context) (string, error)
	SetUserToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// Observable is a Store that reports user changes.
type Observable interface {
	Subscribe(fn func(user *models.User)) (unsubscribe func())
}
