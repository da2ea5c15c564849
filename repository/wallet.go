package repository

import (
	"context"

	"github.com/temboplus/afloat-go/api"
	"github.com/temboplus/afloat-go/cqrs"
	"github.com/temboplus/afloat-go/models"
	"github.com/temboplus/afloat-go/permissions"
	"github.com/temboplus/afloat-go/storage"
)

// WalletRepository reads the disbursement wallet. The last balance fetched
// for each profile is kept in an optional view cache for quick display.
type WalletRepository struct {
	session Session
	cache   *storage.ViewCache[models.WalletBalance]
}

// NewWalletRepository creates the repository. cache may be nil.
func NewWalletRepository(session Session, cache *storage.ViewCache[models.WalletBalance]) *WalletRepository {
	return &WalletRepository{session: session, cache: cache}
}

func (r *WalletRepository) Wallet(ctx context.Context) (models.Wallet, error) {
	if err := r.session.Require(ctx, permissions.WalletViewBalance); err != nil {
		return models.Wallet{}, err
	}
	return api.Call[models.Wallet](ctx, r.session, api.Request{Endpoint: api.GetWallet})
}

// Balance fetches the current balance.
func (r *WalletRepository) Balance(ctx context.Context) (models.WalletBalance, error) {
	if err := r.session.Require(ctx, permissions.WalletViewBalance); err != nil {
		return models.WalletBalance{}, err
	}
	balance, err := api.Call[models.WalletBalance](ctx, r.session, api.Request{Endpoint: api.WalletBalance})
	if err != nil {
		return models.WalletBalance{}, err
	}
	if user, err := r.session.CurrentUser(ctx); err == nil && user != nil {
		r.remember(ctx, user.Profile().ID, balance)
	}
	return balance, nil
}

// CachedBalance returns the last balance fetched for the current user.
func (r *WalletRepository) CachedBalance(ctx context.Context) (models.WalletBalance, bool) {
	if r.cache == nil {
		return models.WalletBalance{}, false
	}
	user, err := r.session.CurrentUser(ctx)
	if err != nil || user == nil {
		return models.WalletBalance{}, false
	}
	b, ok := r.cache.Get(ctx, user.Profile().ID)
	if !ok {
		return models.WalletBalance{}, false
	}
	return *b, true
}

func (r *WalletRepository) Statement(ctx context.Context, q cqrs.StatementQuery) ([]models.StatementEntry, error) {
	if err := r.session.Require(ctx, permissions.WalletViewStatement); err != nil {
		return nil, err
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return api.Call[[]models.StatementEntry](ctx, r.session, api.Request{Endpoint: api.WalletStatement, Query: q.Values()})
}

// StartSession is a login hook that primes the balance cache for users
// allowed to see it. Register it with auth.Auth.OnLogin.
func (r *WalletRepository) StartSession(ctx context.Context, user *models.User) error {
	if !user.Can(permissions.WalletViewBalance) {
		return nil
	}
	balance, err := api.Call[models.WalletBalance](ctx, r.session, api.Request{Endpoint: api.WalletBalance, Token: user.Token()})
	if err != nil {
		return err
	}
	r.remember(ctx, user.Profile().ID, balance)
	return nil
}

func (r *WalletRepository) remember(ctx context.Context, profileID string, b models.WalletBalance) {
	if r.cache == nil {
		return
	}
	r.cache.Set(ctx, profileID, &b)
}
