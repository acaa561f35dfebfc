package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/leadnest/leadnest-api/internal/api"
	"github.com/leadnest/leadnest-api/internal/infrastructure/config"
	"github.com/leadnest/leadnest-api/internal/infrastructure/db/redis"
	"github.com/leadnest/leadnest-api/internal/infrastructure/db/supabase"
	"github.com/leadnest/leadnest-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log := logger.Get()
		log.Fatal().Err(err).Msg("application error")
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("starting leadnest-api")

	deps := api.Deps{
		FrontendURL: cfg.FrontendURL,
		Logger:      log,
	}

	// The store is the backbone of every /api route, but a misconfigured
	// process still starts: routes answer a configuration error until the
	// SUPABASE_* environment is provided.
	if cfg.StoreConfigured() {
		store, err := supabase.New(supabase.Config{
			URL:        cfg.Supabase.URL,
			ServiceKey: cfg.Supabase.ServiceRoleKey,
			Timeout:    cfg.Supabase.Timeout,
		})
		if err != nil {
			return err
		}
		deps.Store = store
		log.Info().Str("url", cfg.Supabase.URL).Msg("store client initialized")
	} else {
		log.Warn().Msg("SUPABASE_URL or SUPABASE_SERVICE_ROLE_KEY missing, store-backed routes disabled")
	}

	// Redis only backs the auth rate limiter. A failed connection is a
	// warning, not a startup failure.
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, auth rate limiting disabled")
		} else {
			deps.Redis = rdb
			defer func() {
				if cerr := rdb.Close(); cerr != nil {
					log.Error().Err(cerr).Msg("redis close error")
				}
			}()
			log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
		}
	}

	e := api.NewRouter(deps)

	errChan := make(chan error, 1)
	go func() {
		errChan <- e.Start(":" + cfg.Port)
	}()

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	log.Info().Msg("server stopped")
	return nil
}
