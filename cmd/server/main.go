// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/sponsordesk/internal/analytics"
	"github.com/tomtom215/sponsordesk/internal/api"
	"github.com/tomtom215/sponsordesk/internal/auth"
	"github.com/tomtom215/sponsordesk/internal/beehiiv"
	"github.com/tomtom215/sponsordesk/internal/config"
	"github.com/tomtom215/sponsordesk/internal/content"
	"github.com/tomtom215/sponsordesk/internal/logging"
	"github.com/tomtom215/sponsordesk/internal/store"
	"github.com/tomtom215/sponsordesk/internal/supervisor"
	"github.com/tomtom215/sponsordesk/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("store_backend", cfg.Store.Backend).
		Bool("beehiiv_configured", cfg.Beehiiv.APIKey != "" && cfg.Beehiiv.PubID != "").
		Bool("admin_configured", cfg.Security.AdminPassword != "" && cfg.Security.JWTSecret != "").
		Msg("Starting sponsordesk")

	kv, err := store.Open(cfg.Store.Backend, cfg.Store.Path)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open key-value store")
	}
	defer func() {
		if err := kv.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing key-value store")
		}
	}()

	handler, err := newHandler(cfg, kv)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to build HTTP handler")
		return
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      writeTimeout(cfg),
		IdleTimeout:       2 * time.Minute,
	}

	treeConfig := supervisor.DefaultTreeConfig()
	treeConfig.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), treeConfig)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create supervisor tree")
		return
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	if gc, ok := kv.(services.GarbageCollector); ok {
		tree.AddMaintenanceService(services.NewStoreGCService(gc, cfg.Store.GCInterval))
		logging.Info().Dur("interval", cfg.Store.GCInterval).Msg("Store garbage collection scheduled")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	logging.Info().Msg("Sponsordesk stopped")
}

// writeTimeout is the server's response deadline. A full sync makes up to
// max_sync_pages sequential Beehiiv calls, each bounded by the Beehiiv
// timeout, so the deadline covers that plus the ordinary request timeout.
func writeTimeout(cfg *config.Config) time.Duration {
	syncBudget := time.Duration(cfg.Beehiiv.MaxSyncPages)*cfg.Beehiiv.Timeout + cfg.Server.Timeout
	return max(cfg.Server.Timeout, syncBudget)
}

// newHandler wires the domain services over kv and returns the chi router.
func newHandler(cfg *config.Config, kv store.Store) (http.Handler, error) {
	aggregator := analytics.NewAggregator(
		beehiiv.NewClient(&cfg.Beehiiv),
		analytics.SettingsFromConfig(&cfg.Beehiiv),
	)

	handler := api.NewHandler(
		aggregator,
		content.NewConfigDocs(kv),
		content.NewInquiries(kv),
		content.NewSnapshots(kv),
	)

	tokens := auth.NewTokenService(cfg.Security.JWTSecret, cfg.Security.TokenTTL)
	admin, err := auth.NewAdminAuthenticator(cfg.Security.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("admin authenticator: %w", err)
	}
	security := logging.NewSecurityLogger()

	router := api.NewRouter(
		handler,
		auth.NewMiddleware(tokens, security),
		auth.NewHandlers(admin, tokens, security),
		api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security)),
	)
	return router.SetupChi(), nil
}
