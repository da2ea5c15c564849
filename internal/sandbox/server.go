// Package sandbox is a local emulation of the Afloat backend: the same
// routes, payloads and error shapes, over in-memory state.
package sandbox

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/temboplus/afloat-go/api"
	"github.com/temboplus/afloat-go/events"
	"github.com/temboplus/afloat-go/internal/sandbox/command"
	"github.com/temboplus/afloat-go/internal/sandbox/handler"
	"github.com/temboplus/afloat-go/internal/sandbox/query"
	"github.com/temboplus/afloat-go/internal/sandbox/repository"
	"github.com/temboplus/afloat-go/middleware"
	"github.com/temboplus/afloat-go/permissions"
)

// Options configures a Server.
type Options struct {
	Secret   []byte
	TokenTTL time.Duration
	// Publisher receives payout and session events. Settlement runs off
	// payout.approved events, so something must deliver those back to
	// Payouts.SettlementHandler.
	Publisher events.Publisher
}

// Server wires the sandbox services behind a gin router.
type Server struct {
	Store   *repository.Store
	Payouts *command.PayoutCommandService
	Router  *gin.Engine
}

func NewServer(store *repository.Store, opts Options) *Server {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = time.Hour
	}

	payoutCmd := command.NewPayoutCommandService(store, opts.Publisher)
	contactCmd := command.NewContactCommandService(store)
	userCmd := command.NewUserCommandService(store, opts.Publisher)

	authQry := query.NewAuthQueryService(store, opts.Secret, opts.TokenTTL)
	payoutQry := query.NewPayoutQueryService(store)
	contactQry := query.NewContactQueryService(store)
	walletQry := query.NewWalletQueryService(store)
	adminQry := query.NewAdminQueryService(store)

	sessions := handler.NewSessionHandler(authQry, userCmd)
	contacts := handler.NewContactHandler(contactCmd, contactQry)
	payouts := handler.NewPayoutHandler(payoutCmd, payoutQry, store)
	wallet := handler.NewWalletHandler(walletQry)
	admin := handler.NewAdminHandler(adminQry, userCmd)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.LoggingMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "afloat-sandbox"})
	})

	route := func(g *gin.RouterGroup, ep api.Endpoint, h gin.HandlerFunc, perms ...permissions.Permission) {
		chain := []gin.HandlerFunc{}
		if len(perms) > 0 {
			chain = append(chain, handler.RequireAccess(store, perms...))
		}
		g.Handle(ep.Method, ep.Path, append(chain, h)...)
	}

	route(&router.RouterGroup, api.Login, sessions.Login)

	v1 := router.Group("", middleware.AuthMiddleware(opts.Secret))
	{
		route(v1, api.AccessList, sessions.AccessList)
		route(v1, api.Profile, sessions.Profile)
		route(v1, api.Identity, sessions.Identity)
		route(v1, api.ChangePassword, sessions.ChangePassword)

		route(v1, api.ListContacts, contacts.ListContacts, permissions.ContactView)
		route(v1, api.GetContact, contacts.GetContact, permissions.ContactView)
		route(v1, api.CreateContact, contacts.CreateContact, permissions.ContactCreate)
		route(v1, api.UpdateContact, contacts.UpdateContact, permissions.ContactUpdate)
		route(v1, api.DeleteContact, contacts.DeleteContact, permissions.ContactDelete)

		route(v1, api.ListPayouts, payouts.ListPayouts, permissions.PayoutView)
		route(v1, api.GetPayout, payouts.GetPayout, permissions.PayoutView)
		route(v1, api.CreatePayout, payouts.CreatePayout, permissions.PayoutCreate)
		route(v1, api.ApprovePayout, payouts.ApprovePayout, permissions.PayoutApprove)
		route(v1, api.RejectPayout, payouts.RejectPayout, permissions.PayoutApprove)

		route(v1, api.GetWallet, wallet.GetWallet, permissions.WalletViewBalance)
		route(v1, api.WalletBalance, wallet.GetBalance, permissions.WalletViewBalance)
		route(v1, api.WalletStatement, wallet.GetStatement, permissions.WalletViewStatement)

		route(v1, api.ListRoles, admin.ListRoles, permissions.RoleView)
		route(v1, api.GetRole, admin.GetRole, permissions.RoleView)
		route(v1, api.ListUsers, admin.ListUsers, permissions.UserView)
		route(v1, api.GetUser, admin.GetUser, permissions.UserView)
		route(v1, api.CreateUser, admin.CreateUser, permissions.UserCreate)
	}

	return &Server{Store: store, Payouts: payoutCmd, Router: router}
}

// NewLocal builds a seeded server whose events travel over an in-process
// bus, with settlement subscribed to it.
func NewLocal(secret []byte, tokenTTL time.Duration, password string) (*Server, Fixtures, *events.Bus, error) {
	store := repository.NewStore()
	fx, err := Seed(store, password)
	if err != nil {
		return nil, Fixtures{}, nil, err
	}
	bus := events.NewBus()
	srv := NewServer(store, Options{Secret: secret, TokenTTL: tokenTTL, Publisher: bus})
	bus.Subscribe(events.PayoutEventsStream, srv.Payouts.SettlementHandler())
	return srv, fx, bus, nil
}
