package auth

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/temboplus/afloat-go/api"
	"github.com/temboplus/afloat-go/models"
)

// ServerStore holds the user of one request in memory.
type ServerStore struct {
	mu   sync.RWMutex
	user *models.User
}

func NewServerStore() *ServerStore {
	return &ServerStore{}
}

func (s *ServerStore) User(context.Context) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, nil
}

func (s *ServerStore) SetUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

// Refresh is a no-op; there is nothing behind the in-memory user.
func (s *ServerStore) Refresh(context.Context) error {
	return nil
}

// ServerTokenHandler holds the token of one request in memory and can
// resolve it into a User.
type ServerTokenHandler struct {
	doer api.Doer

	mu    sync.RWMutex
	token string
}

func NewServerTokenHandler(doer api.Doer) *ServerTokenHandler {
	return &ServerTokenHandler{doer: doer}
}

func (h *ServerTokenHandler) UserToken(context.Context) (string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token, nil
}

func (h *ServerTokenHandler) SetUserToken(_ context.Context, token string) error {
	h.mu.Lock()
	h.token = token
	h.mu.Unlock()
	return nil
}

func (h *ServerTokenHandler) ClearToken(ctx context.Context) error {
	return h.SetUserToken(ctx, "")
}

// ConstructUser fetches the access list, profile and identity behind token
// concurrently and assembles the User. The first failure cancels the other
// fetches and fails the whole construction.
func (h *ServerTokenHandler) ConstructUser(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrEmptyToken
	}

	var (
		access   []string
		profile  models.Profile
		identity api.IdentityResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := api.Call[[]string](gctx, h.doer, api.Request{Endpoint: api.AccessList, Token: token})
		if err != nil {
			return fmt.Errorf("failed to fetch access list: %w", err)
		}
		access = v
		return nil
	})
	g.Go(func() error {
		v, err := api.Call[models.Profile](gctx, h.doer, api.Request{Endpoint: api.Profile, Token: token})
		if err != nil {
			return fmt.Errorf("failed to fetch profile: %w", err)
		}
		profile = v
		return nil
	})
	g.Go(func() error {
		v, err := api.Call[api.IdentityResponse](gctx, h.doer, api.Request{Endpoint: api.Identity, Token: token})
		if err != nil {
			return fmt.Errorf("failed to fetch identity: %w", err)
		}
		identity = v
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	user, err := models.NewUser(models.UserData{
		Name:          identity.Name,
		Identity:      identity.Identity,
		Profile:       profile,
		Token:         token,
		ResetPassword: identity.ResetPassword,
		Access:        access,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build user: %w", err)
	}
	return user, nil
}
