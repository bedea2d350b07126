// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/recetario/internal/api"
	"github.com/tomtom215/recetario/internal/auth"
	"github.com/tomtom215/recetario/internal/authz"
	"github.com/tomtom215/recetario/internal/config"
	"github.com/tomtom215/recetario/internal/database"
	"github.com/tomtom215/recetario/internal/logging"
	"github.com/tomtom215/recetario/internal/supervisor"
	"github.com/tomtom215/recetario/internal/supervisor/services"
)

const (
	shutdownTimeout = 10 * time.Second
	janitorInterval = time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("addr", cfg.Server.Addr()).
		Bool("seed_demo_data", cfg.Database.SeedDemoData).
		Msg("Starting Recetario")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

//nolint:gocyclo // sequential setup steps
func run(cfg *config.Config) error {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	hasher := auth.NewHasher(auth.DefaultBcryptCost)

	if cfg.Database.SeedDemoData {
		hash, err := hasher.Hash(cfg.Database.DemoPassword)
		if err != nil {
			return err
		}
		if err := db.SeedDemoData(context.Background(), hash); err != nil {
			return err
		}
		logging.Info().Msg("Demo data seeded")
	}

	rc, err := initRecommend(cfg, db, logging.WithComponent("recommend"))
	if err != nil {
		return err
	}
	defer func() {
		if err := rc.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing redis client")
		}
	}()

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		return err
	}
	enforcer, err := authz.NewEnforcer(authz.DefaultEnforcerConfig())
	if err != nil {
		return err
	}
	limiter := auth.NewLoginLimiter(cfg.Security.LoginAttempts, cfg.Security.LoginWindow)

	router, err := api.NewRouter(&api.Dependencies{
		DB:             db,
		Engine:         rc.Engine,
		Breaker:        rc.Provider,
		JWT:            jwtManager,
		Hasher:         hasher,
		Limiter:        limiter,
		Enforcer:       enforcer,
		Security:       &cfg.Security,
		RequestTimeout: cfg.Server.RequestTimeout,
	})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.Handler(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  shutdownTimeout,
	})
	if err != nil {
		return err
	}

	tree.AddMaintenanceService(services.NewJanitorService(
		janitorTasks(db, rc.Engine, limiter, enforcer),
		services.JanitorConfig{Interval: janitorInterval},
		logging.WithComponent("janitor"),
	))
	tree.AddAPIService(services.NewHTTPServerService(server, shutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	// The channel receives exactly one value when the tree stops.
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}
	return nil
}
