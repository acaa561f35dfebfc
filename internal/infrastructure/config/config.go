package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port        string `env:"PORT,         default=3001"`
	Env         string `env:"ENV,          default=development"`
	LogLevel    string `env:"LOG_LEVEL,    default=info"`
	FrontendURL string `env:"FRONTEND_URL, default=http://localhost:3000"`

	Supabase SupabaseConfig
	Redis    RedisConfig
}

// SupabaseConfig points at the external auth+data store. URL and key have no
// defaults on purpose: when absent, the process starts degraded instead of
// guessing at a project.
type SupabaseConfig struct {
	URL            string        `env:"SUPABASE_URL"`
	ServiceRoleKey string        `env:"SUPABASE_SERVICE_ROLE_KEY"`
	Timeout        time.Duration `env:"UPSTREAM_TIMEOUT, default=10s"`
}

// RedisConfig is optional; rate limiting is skipped when Addr is empty.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
// Called exactly once at startup.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// StoreConfigured reports whether the store client can be built at all.
func (c *Config) StoreConfigured() bool {
	return c.Supabase.URL != "" && c.Supabase.ServiceRoleKey != ""
}
