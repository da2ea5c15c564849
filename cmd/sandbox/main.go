package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/temboplus/afloat-go/config"
	"github.com/temboplus/afloat-go/events"
	"github.com/temboplus/afloat-go/internal/sandbox"
	"github.com/temboplus/afloat-go/internal/sandbox/repository"
	redisClient "github.com/temboplus/afloat-go/redis"
)

func main() {
	cfg, err := config.LoadSandbox()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := repository.NewStore()
	fx, err := sandbox.Seed(store, cfg.SeedPassword)
	if err != nil {
		log.Fatalf("Failed to seed sandbox: %v", err)
	}

	opts := sandbox.Options{Secret: []byte(cfg.JWTSecret), TokenTTL: cfg.TokenTTL}
	var srv *sandbox.Server

	if cfg.RedisAddr != "" {
		redis, err := redisClient.NewClient(ctx, redisClient.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redis.Close()

		opts.Publisher = events.NewStreamPublisher(redis.Client)
		srv = sandbox.NewServer(store, opts)

		hostname, _ := os.Hostname()
		subscriber := events.NewStreamSubscriber(redis.Client, events.SubscriberConfig{
			Group:    "sandbox-settlement",
			Consumer: "settlement-" + hostname,
			Stream:   events.PayoutEventsStream,
			Handler:  srv.Payouts.SettlementHandler(),
		})
		go func() {
			if err := subscriber.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("Settlement subscriber stopped: %v", err)
			}
		}()
		log.Printf("Settlement consuming %s via Redis", events.PayoutEventsStream)
	} else {
		bus := events.NewBus()
		opts.Publisher = bus
		srv = sandbox.NewServer(store, opts)
		bus.Subscribe(events.PayoutEventsStream, srv.Payouts.SettlementHandler())
		log.Printf("Settlement running in process")
	}

	log.Printf("Seeded profile %s (wallet %s) with logins %s, %s, %s",
		fx.Profile.ID, fx.Wallet.AccountNo, sandbox.AdminIdentity, sandbox.MakerIdentity, sandbox.ApproverIdentity)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Failed to shut down: %v", err)
		}
	}()

	log.Printf("Afloat sandbox starting on port %s", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
}
