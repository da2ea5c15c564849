// Package afloat assembles the Afloat client: a session facade over the
// configured storage and the permission-aware repositories that share it.
package afloat

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/temboplus/afloat-go/api"
	"github.com/temboplus/afloat-go/auth"
	"github.com/temboplus/afloat-go/config"
	"github.com/temboplus/afloat-go/events"
	"github.com/temboplus/afloat-go/models"
	"github.com/temboplus/afloat-go/redis"
	"github.com/temboplus/afloat-go/repository"
	"github.com/temboplus/afloat-go/storage"
)

// Client is a signed-in (or signing-in) Afloat business account.
type Client struct {
	Auth     *auth.Auth
	Bus      *events.Bus
	Contacts *repository.ContactRepository
	Payouts  *repository.PayoutRepository
	Wallet   *repository.WalletRepository
	Roles    *repository.RoleRepository
	Users    *repository.UserRepository

	redis *redis.Client
}

// NewClient connects to the backend at cfg.APIURL. With cfg.RedisAddr set,
// the session and read caches live in Redis and session events are also
// written to a Redis stream; otherwise everything is held in process.
func NewClient(ctx context.Context, cfg config.Config) (*Client, error) {
	c := &Client{Bus: events.NewBus()}

	var (
		sessionKV storage.KeyValue
		cacheKV   storage.KeyValue
		publisher events.Publisher
	)
	if cfg.RedisAddr != "" {
		rdb, err := redis.NewClient(ctx, redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		if err != nil {
			return nil, err
		}
		c.redis = rdb
		sessionKV = redis.NewStore(rdb.Client, cfg.SessionNamespace, cfg.SessionTTL)
		cacheKV = redis.NewStore(rdb.Client, cfg.SessionNamespace+":cache", cfg.CacheTTL)
		publisher = events.NewStreamPublisher(rdb.Client)
	} else {
		sessionKV = storage.NewMemory(cfg.SessionTTL)
		cacheKV = storage.NewMemory(cfg.CacheTTL)
	}

	session, err := auth.Initialize(auth.Options{
		Doer:      api.NewClient(cfg.APIURL, cfg.HTTPTimeout),
		Storage:   sessionKV,
		Bus:       c.Bus,
		Publisher: publisher,
	})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}

	c.Auth = session
	c.Contacts = repository.NewContactRepository(session)
	c.Payouts = repository.NewPayoutRepository(session, storage.NewViewCache[models.Payout](cacheKV, "payout:"))
	c.Wallet = repository.NewWalletRepository(session, storage.NewViewCache[models.WalletBalance](cacheKV, "balance:"))
	c.Roles = repository.NewRoleRepository(session)
	c.Users = repository.NewUserRepository(session)

	session.OnLogin(c.Wallet.StartSession)
	return c, nil
}

// NewServerSession resolves a caller's bearer token into a request-scoped
// session against cfg.APIURL. Nothing is persisted.
func NewServerSession(ctx context.Context, cfg config.Config, token string) (*auth.Auth, error) {
	return auth.InitializeServer(ctx, api.NewClient(cfg.APIURL, cfg.HTTPTimeout), token)
}

// LogIn signs in and primes the session's caches.
func (c *Client) LogIn(ctx context.Context, identity, password string) (*models.User, error) {
	return c.Auth.LogIn(ctx, identity, password)
}

// Close releases the Redis connection, if any. The session itself persists.
func (c *Client) Close() error {
	if c.redis == nil {
		return nil
	}
	if err := c.redis.Close(); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("Client: failed to close redis: %v", err)
		return err
	}
	return nil
}
