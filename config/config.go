// Package config loads settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the client library configuration.
type Config struct {
	APIURL           string        `env:"AFLOAT_API_URL" envDefault:"http://localhost:8080"`
	HTTPTimeout      time.Duration `env:"AFLOAT_HTTP_TIMEOUT" envDefault:"30s"`
	RedisAddr        string        `env:"AFLOAT_REDIS_ADDR"`
	RedisPassword    string        `env:"AFLOAT_REDIS_PASSWORD"`
	RedisDB          int           `env:"AFLOAT_REDIS_DB" envDefault:"0"`
	SessionNamespace string        `env:"AFLOAT_SESSION_NAMESPACE" envDefault:"afloat"`
	SessionTTL       time.Duration `env:"AFLOAT_SESSION_TTL" envDefault:"12h"`
	CacheTTL         time.Duration `env:"AFLOAT_CACHE_TTL" envDefault:"5m"`
}

// Sandbox configures the local backend emulator.
type Sandbox struct {
	Port          string        `env:"PORT" envDefault:"8080"`
	JWTSecret     string        `env:"JWT_SECRET,notEmpty"`
	TokenTTL      time.Duration `env:"SANDBOX_TOKEN_TTL" envDefault:"1h"`
	SeedPassword  string        `env:"SANDBOX_SEED_PASSWORD" envDefault:"password123"`
	RedisAddr     string        `env:"AFLOAT_REDIS_ADDR"`
	RedisPassword string        `env:"AFLOAT_REDIS_PASSWORD"`
	RedisDB       int           `env:"AFLOAT_REDIS_DB" envDefault:"0"`
}

// Gateway configures the permission-checking proxy in front of the API.
type Gateway struct {
	Port        string        `env:"GATEWAY_PORT" envDefault:"8090"`
	UpstreamURL string        `env:"AFLOAT_API_URL" envDefault:"http://localhost:8080"`
	HTTPTimeout time.Duration `env:"AFLOAT_HTTP_TIMEOUT" envDefault:"30s"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadSandbox() (Sandbox, error) {
	var cfg Sandbox
	if err := ParseEnv(&cfg); err != nil {
		return Sandbox{}, err
	}
	return cfg, nil
}

func LoadGateway() (Gateway, error) {
	var cfg Gateway
	if err := ParseEnv(&cfg); err != nil {
		return Gateway{}, err
	}
	return cfg, nil
}
