package main

import (
	"log"
	"net/http"

	"github.com/temboplus/afloat-go/api"
	"github.com/temboplus/afloat-go/config"
	"github.com/temboplus/afloat-go/internal/gateway"
)

func main() {
	cfg, err := config.LoadGateway()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	doer := api.NewClient(cfg.UpstreamURL, cfg.HTTPTimeout)
	router := gateway.NewRouter(cfg.UpstreamURL, doer, &http.Client{Timeout: cfg.HTTPTimeout})

	log.Printf("Afloat gateway starting on port %s, upstream %s", cfg.Port, cfg.UpstreamURL)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
