// Package main is the entry point for the Inkpress blog server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inkpress/internal/cache"
	"inkpress/internal/config"
	"inkpress/internal/handlers"
	"inkpress/internal/identity"
	"inkpress/internal/mailer"
	"inkpress/internal/notify"
	"inkpress/internal/render"
	"inkpress/internal/router"
	"inkpress/internal/session"
	"inkpress/internal/store"
)

func main() {
	// Structured logger — text output, debug level in development.
	level := slog.LevelInfo
	if os.Getenv("APP_ENV") != "production" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to SurrealDB (the hosted document database).
	db, err := store.Connect(cfg.SurrealURL, cfg.SurrealNS, cfg.SurrealDB, cfg.SurrealUser, cfg.SurrealPass)
	if err != nil {
		slog.Error("failed to connect to surrealdb", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Connect to Valkey (sessions + page cache).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()
	pageCache := cache.NewPageCache(valkeyClient, cache.DefaultPageTTL)

	// In non-development environments, mark cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	// The identity gate decides who may mutate content; the stores consult
	// it on every write.
	gate := identity.NewGate(cfg.AdminEmail)

	// Auth state changes flush the page cache so pages re-render with or
	// without the admin controls.
	gate.Watch(func(p *identity.Principal) {
		pageCache.InvalidateAll(context.Background())
	})

	// Initialize the HTML template renderer.
	renderer, err := render.New(gate)
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Initialize data stores.
	postStore := store.NewPostStore(db, gate)
	categoryStore := store.NewCategoryStore(db, gate, postStore)
	subscriptionStore := store.NewSubscriptionStore(db)

	// Email relay (optional — the blog works without it; fan-out then
	// reports every recipient as failed).
	var relay mailer.Relay
	if cfg.RelayConfigured() {
		relay = mailer.NewEmailJS(mailer.Config{
			ServiceID:  cfg.RelayServiceID,
			TemplateID: cfg.RelayTemplateID,
			PublicKey:  cfg.RelayPublicKey,
			PrivateKey: cfg.RelayPrivateKey,
			BaseURL:    cfg.RelayBaseURL,
		})
		slog.Info("email relay configured", "service", cfg.RelayServiceID)
	} else {
		slog.Warn("email relay not configured — subscriber notifications disabled")
	}
	notifier := notify.New(subscriptionStore, relay, cfg.SiteBaseURL, cfg.FromName)

	// Create handler groups with their dependencies.
	adminHandlers := handlers.NewAdmin(renderer, postStore, categoryStore, pageCache, notifier)
	authHandlers := handlers.NewAuth(renderer, sessionStore, gate, cfg)
	publicHandlers := handlers.NewPublic(renderer, postStore, categoryStore, subscriptionStore, pageCache)

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessionStore, gate, adminHandlers, authHandlers, publicHandlers, secureCookies)

	// Create the HTTP server with sensible timeouts.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
