// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureConnect Contributors

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/secureconnect/secureconnect/internal/auth"
	authpg "github.com/secureconnect/secureconnect/internal/auth/postgres"
	"github.com/secureconnect/secureconnect/internal/config"
	"github.com/secureconnect/secureconnect/internal/httpapi"
	"github.com/secureconnect/secureconnect/internal/logging"
	"github.com/secureconnect/secureconnect/internal/observability"
	"github.com/secureconnect/secureconnect/internal/store"
)

const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the authentication server",
		Long: `Start the HTTP server serving the authentication API, the page
routes behind the request gate, and the observability endpoints.`,
		RunE: runServe,
	}

	defaults := config.Default()
	cmd.Flags().String("listen", defaults.Listen, "HTTP listen address")
	cmd.Flags().String("metrics", defaults.Metrics, "metrics/health listen address (empty disables)")
	cmd.Flags().String("database", defaults.Database, "PostgreSQL connection URL")
	cmd.Flags().String("secret", "", "session token signing secret")
	cmd.Flags().Duration("ttl", defaults.TokenTTL, "session token lifetime")
	cmd.Flags().Bool("securecookie", false, "mark the session cookie Secure")
	cmd.Flags().String("logformat", defaults.LogFormat, "log format: json or text")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}

	logging.SetDefault("secureconnect", version, cfg.LogFormat)
	logger := slog.Default()

	if cfg.UsingDefaultSecret() {
		logger.Warn("no signing secret configured, using built-in default; set SECURECONNECT_SECRET in production")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := store.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	users := authpg.NewUserRepository(pool)
	hasher := auth.NewBcryptHasher()
	codec := auth.NewTokenCodec(cfg.SigningSecret())

	service, err := auth.NewService(users, codec, hasher)
	if err != nil {
		return err
	}

	var metrics *observability.Metrics
	var obsServer *observability.Server
	if cfg.Metrics != "" {
		obsServer = observability.NewServer(cfg.Metrics, store.ReadinessCheck(pool, 2*time.Second))
		metrics = obsServer.Metrics()
	}

	handlers, err := httpapi.NewHandlers(service, cfg.TokenTTL, cfg.SecureCookie, logger, metrics)
	if err != nil {
		return err
	}

	router, err := httpapi.NewRouter(httpapi.RouterConfig{
		Handlers: handlers,
		Gate:     httpapi.NewGate(),
		Logger:   logger,
		Metrics:  metrics,
	})
	if err != nil {
		return err
	}

	var obsErrCh <-chan error
	if obsServer != nil {
		obsErrCh, err = obsServer.Start()
		if err != nil {
			return err
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if stopErr := obsServer.Stop(stopCtx); stopErr != nil {
				logger.Error("observability server shutdown failed", "error", stopErr)
			}
		}()
	}

	httpServer := &http.Server{
		Addr:              cfg.Listen,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErrCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("addr", cfg.Listen))
		if serveErr := httpServer.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			serveErrCh <- serveErr
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr := <-serveErrCh:
		return oops.Code("SERVER_FAILED").Wrap(serveErr)
	case obsErr := <-obsErrCh:
		return oops.Code("OBSERVABILITY_FAILED").Wrap(obsErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return oops.Code("SHUTDOWN_FAILED").Wrap(err)
	}

	logger.Info("server stopped")
	return nil
}
