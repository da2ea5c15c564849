package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/temboplus/afloat-go/events"
	"github.com/temboplus/afloat-go/models"
	"github.com/temboplus/afloat-go/storage"
)

const (
	userKey  = "session:user"
	tokenKey = "session:token"
)

// SessionStore persists the serialized user in a KeyValue and notifies
// subscribers through a Bus whenever it changes.
type SessionStore struct {
	kv  storage.KeyValue
	bus *events.Bus
}

func NewSessionStore(kv storage.KeyValue, bus *events.Bus) *SessionStore {
	if bus == nil {
		bus = events.NewBus()
	}
	return &SessionStore{kv: kv, bus: bus}
}

// User reads and decodes the stored user. An unreadable blob is treated as
// signed out and removed.
func (s *SessionStore) User(ctx context.Context) (*models.User, error) {
	raw, ok, err := s.kv.Get(ctx, userKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if !ok {
		return nil, nil
	}
	user, ok := models.UserFromJSON([]byte(raw))
	if !ok {
		log.Printf("SessionStore: discarding unreadable session user")
		if err := s.kv.Delete(ctx, userKey); err != nil {
			log.Printf("SessionStore: delete error: %v", err)
		}
		return nil, nil
	}
	return user, nil
}

func (s *SessionStore) SetUser(ctx context.Context, user *models.User) error {
	if user == nil {
		if err := s.kv.Delete(ctx, userKey); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
	} else {
		data, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("failed to marshal session user: %w", err)
		}
		if err := s.kv.Set(ctx, userKey, string(data)); err != nil {
			return fmt.Errorf("failed to write session: %w", err)
		}
	}
	s.notify(ctx, user)
	return nil
}

// Refresh re-reads the stored user, picking up changes written by another
// process sharing the KeyValue, and notifies subscribers.
func (s *SessionStore) Refresh(ctx context.Context) error {
	user, err := s.User(ctx)
	if err != nil {
		return err
	}
	s.notify(ctx, user)
	return nil
}

// Subscribe calls fn with the new user, or nil, on every change.
func (s *SessionStore) Subscribe(fn func(user *models.User)) (unsubscribe func()) {
	return s.bus.Subscribe(events.SessionEventsStream, func(_ context.Context, e events.Event) error {
		if e.Type != events.SessionUserChanged {
			return nil
		}
		user, _ := e.Data.(*models.User)
		fn(user)
		return nil
	})
}

func (s *SessionStore) notify(ctx context.Context, user *models.User) {
	_ = s.bus.Publish(ctx, events.SessionEventsStream, events.SessionUserChanged, user)
}

// TokenStore persists the bearer token in a KeyValue, apart from the user.
type TokenStore struct {
	kv storage.KeyValue
}

func NewTokenStore(kv storage.KeyValue) *TokenStore {
	return &TokenStore{kv: kv}
}

func (s *TokenStore) UserToken(ctx context.Context) (string, error) {
	token, _, err := s.kv.Get(ctx, tokenKey)
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return token, nil
}

func (s *TokenStore) SetUserToken(ctx context.Context, token string) error {
	if token == "" {
		return s.ClearToken(ctx)
	}
	if err := s.kv.Set(ctx, tokenKey, token); err != nil {
		return fmt.Errorf("failed to write token: %w", err)
	}
	return nil
}

func (s *TokenStore) ClearToken(ctx context.Context) error {
	if err := s.kv.Delete(ctx, tokenKey); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}
