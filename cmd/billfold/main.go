package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"billfold/internal/config"
	apphttp "billfold/internal/http"
	applog "billfold/internal/log"
	"billfold/internal/session"
)

func main() {
	// Optional .env for local development; env vars win.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		applog.New(applog.DefaultConfig()).Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := applog.New(applog.Config{
		Level:     cfg.Level(),
		Component: "billfold",
	})
	applog.SetDefault(logger)

	store := session.NewStore(session.Options{
		TTL:             cfg.SessionTTL,
		CleanupInterval: cfg.SessionCleanupInterval,
		CookieName:      cfg.SessionCookie,
		CookieSecure:    cfg.SessionCookieSecure,
	})

	srv := apphttp.NewServer(":"+cfg.Port, store, logger)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting billfold server", "port", cfg.Port, "session_ttl", cfg.SessionTTL.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return store.Janitor(ctx)
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
