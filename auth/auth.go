package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/temboplus/afloat-go/api"
	"github.com/temboplus/afloat-go/apierr"
	"github.com/temboplus/afloat-go/cqrs"
	"github.com/temboplus/afloat-go/events"
	"github.com/temboplus/afloat-go/models"
	"github.com/temboplus/afloat-go/permissions"
	"github.com/temboplus/afloat-go/schema"
	"github.com/temboplus/afloat-go/storage"
)

// LoginHook runs after every successful LogIn. A failing hook is logged;
// the login itself still succeeds.
type LoginHook func(ctx context.Context, user *models.User) error

// Auth is the session facade. It is safe for concurrent use.
type Auth struct {
	store     Store
	tokens    TokenHandler
	doer      api.Doer
	publisher events.Publisher

	mu    sync.RWMutex
	hooks []LoginHook
}

// Options configures a client session.
type Options struct {
	// Doer sends requests to the backend. Required.
	Doer api.Doer
	// Storage persists the session. Defaults to an in-process store.
	Storage storage.KeyValue
	// Bus delivers session changes to subscribers. Defaults to a new Bus.
	Bus *events.Bus
	// Publisher additionally receives login and logout events, for example
	// an events.StreamPublisher.
	Publisher events.Publisher
}

// New assembles a facade over explicit strategies.
func New(store Store, tokens TokenHandler, doer api.Doer, publisher events.Publisher) *Auth {
	return &Auth{store: store, tokens: tokens, doer: doer, publisher: publisher}
}

// Initialize creates the client session, backed by opts.Storage. Call it
// once at startup and pass the result, or a context built with WithAuth, to
// whatever needs it.
func Initialize(opts Options) (*Auth, error) {
	if opts.Doer == nil {
		return nil, errors.New("auth: a Doer is required")
	}
	if opts.Storage == nil {
		opts.Storage = storage.NewMemory(0)
	}
	if opts.Bus == nil {
		opts.Bus = events.NewBus()
	}

	var publisher events.Publisher = opts.Bus
	if opts.Publisher != nil {
		publisher = events.Fanout{opts.Bus, opts.Publisher}
	}

	return New(NewSessionStore(opts.Storage, opts.Bus), NewTokenStore(opts.Storage), opts.Doer, publisher), nil
}

// InitializeServer resolves token into a fresh, request-scoped session. An
// empty or expired token fails before any request is made. Every call
// returns a new instance.
func InitializeServer(ctx context.Context, doer api.Doer, token string) (*Auth, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrEmptyToken
	}
	if err := checkExpiry(token, time.Now()); err != nil {
		return nil, err
	}

	handler := NewServerTokenHandler(doer)
	user, err := handler.ConstructUser(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize server session: %w", err)
	}

	return seed(ctx, NewServerStore(), handler, doer, user, token)
}

// seed stores a resolved user and token in the given strategies.
func seed(ctx context.Context, store Store, tokens TokenHandler, doer api.Doer, user *models.User, token string) (*Auth, error) {
	if err := store.SetUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to store session user: %w", err)
	}
	if err := tokens.SetUserToken(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to store session token: %w", err)
	}
	return New(store, tokens, doer, nil), nil
}

// Token returns the bearer token, "" when signed out.
func (a *Auth) Token(ctx context.Context) (string, error) {
	return a.tokens.UserToken(ctx)
}

// CurrentUser returns the signed-in user, nil when signed out.
func (a *Auth) CurrentUser(ctx context.Context) (*models.User, error) {
	return a.store.User(ctx)
}

// CheckPermission reports whether the current user holds p. It is false when
// no one is signed in or the session cannot be read.
func (a *Auth) CheckPermission(ctx context.Context, p permissions.Permission) bool {
	user, err := a.store.User(ctx)
	if err != nil {
		log.Printf("Auth: failed to read session user: %v", err)
		return false
	}
	return user.Can(p)
}

// Require fails with an *apierr.PermissionError unless the current user
// holds every one of perms.
func (a *Auth) Require(ctx context.Context, perms ...permissions.Permission) error {
	user, err := a.store.User(ctx)
	if err != nil {
		log.Printf("Auth: failed to read session user: %v", err)
		return apierr.NewPermissionError(perms...)
	}
	if user == nil || !user.CanAll(perms...) {
		return apierr.NewPermissionError(perms...)
	}
	return nil
}

// Do sends req with the session token attached, unless req already has one.
func (a *Auth) Do(ctx context.Context, req api.Request) (*api.Response, error) {
	if req.Token == "" {
		token, err := a.tokens.UserToken(ctx)
		if err != nil {
			return nil, err
		}
		req.Token = token
	}
	return a.doer.Do(ctx, req)
}

// LogIn signs in, replacing any previous session, and runs the login hooks.
func (a *Auth) LogIn(ctx context.Context, identity, password string) (*models.User, error) {
	cmd := cqrs.LoginCommand{Identity: strings.TrimSpace(identity), Password: password}
	if err := schema.Validate(cmd); err != nil {
		return nil, err
	}

	if err := a.clear(ctx); err != nil {
		return nil, err
	}

	resp, err := api.Call[api.LoginResponse](ctx, a.doer, api.Request{Endpoint: api.Login, Body: cmd})
	if err != nil {
		return nil, err
	}

	user, err := models.NewUser(models.UserData{
		Name:          resp.Name,
		Identity:      cmd.Identity,
		Profile:       resp.Profile,
		Token:         resp.Token,
		ResetPassword: resp.ResetPassword,
		Access:        resp.Access,
	})
	if err != nil {
		return nil, apierr.Unknown(fmt.Errorf("login: unexpected response: %w", err))
	}

	if err := a.tokens.SetUserToken(ctx, user.Token()); err != nil {
		return nil, err
	}
	if err := a.store.SetUser(ctx, user); err != nil {
		return nil, err
	}

	a.publish(ctx, events.SessionLoggedIn, user)
	a.runLoginHooks(ctx, user)
	return user, nil
}

// ResetPassword changes the password and signs out, so the user logs in
// again with the new one.
func (a *Auth) ResetPassword(ctx context.Context, current, updated string) error {
	cmd := cqrs.ResetPasswordCommand{CurrentPassword: current, NewPassword: updated}
	if err := schema.Validate(cmd); err != nil {
		return err
	}

	user, err := a.store.User(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotAuthenticated
	}

	if err := api.Exec(ctx, a, api.Request{Endpoint: api.ChangePassword, Body: cmd}); err != nil {
		return err
	}

	a.publish(ctx, events.PasswordChanged, user)
	return a.LogOut(ctx)
}

// LogOut clears the session.
func (a *Auth) LogOut(ctx context.Context) error {
	user, err := a.store.User(ctx)
	if err != nil {
		log.Printf("Auth: failed to read session user: %v", err)
	}
	if err := a.clear(ctx); err != nil {
		return err
	}
	if user != nil {
		a.publish(ctx, events.SessionLoggedOut, user)
	}
	return nil
}

// OnLogin registers a hook run after every successful LogIn.
func (a *Auth) OnLogin(hook LoginHook) {
	a.mu.Lock()
	a.hooks = append(a.hooks, hook)
	a.mu.Unlock()
}

// Subscribe calls fn whenever the session user changes. Sessions whose
// store cannot report changes never call fn.
func (a *Auth) Subscribe(fn func(user *models.User)) (unsubscribe func()) {
	if o, ok := a.store.(Observable); ok {
		return o.Subscribe(fn)
	}
	return func() {}
}

// Refresh reloads the session from its store.
func (a *Auth) Refresh(ctx context.Context) error {
	return a.store.Refresh(ctx)
}

func (a *Auth) clear(ctx context.Context) error {
	if err := a.store.SetUser(ctx, nil); err != nil {
		return err
	}
	return a.tokens.ClearToken(ctx)
}

func (a *Auth) runLoginHooks(ctx context.Context, user *models.User) {
	a.mu.RLock()
	hooks := append([]LoginHook(nil), a.hooks...)
	a.mu.RUnlock()

	for _, hook := range hooks {
		if err := hook(ctx, user); err != nil {
			log.Printf("Auth: login hook failed for %s: %v", user.Identity(), err)
		}
	}
}

func (a *Auth) publish(ctx context.Context, eventType string, user *models.User) {
	if a.publisher == nil {
		return
	}
	event := events.SessionEvent{Identity: user.Identity(), ProfileID: user.Profile().ID}
	if err := a.publisher.Publish(ctx, events.SessionEventsStream, eventType, event); err != nil {
		log.Printf("Auth: failed to publish %s: %v", eventType, err)
	}
}
