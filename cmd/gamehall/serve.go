package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vkoshev/gamehall/internal/api"
	"github.com/vkoshev/gamehall/internal/auth"
	"github.com/vkoshev/gamehall/internal/config"
	"github.com/vkoshev/gamehall/internal/snapshot"
	"github.com/vkoshev/gamehall/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gamehall server (foreground)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func runServer() error {
	fmt.Fprintf(os.Stderr, "gamehall version %s\n", version)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Initialize structured logging.
	logLevel := slog.LevelInfo
	if strings.EqualFold(cfg.Log.Level, "debug") {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	if cfg.Snapshot.FreshnessExceedsRetention() {
		slog.Warn("freshness window exceeds retention horizon; fresh-batch queries will always miss",
			"freshness", cfg.Snapshot.Freshness(), "retention", cfg.Snapshot.Retention())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Open storage.
	store, err := storage.Open(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Warn("closing storage", "error", err)
		}
	}()

	// Build the snapshot subsystem.
	generator := snapshot.NewGenerator(store, cfg.Snapshot.BatchSize, cfg.Snapshot.Retention(), nil)
	reader := snapshot.NewReader(store, generator, cfg.Snapshot.BatchSize, cfg.Snapshot.Freshness(), nil)
	scheduler := snapshot.NewScheduler(generator, cfg.Snapshot.Cadence, nil)

	// Admin tokens live in memory; a restart just forces re-login.
	tokens := auth.NewTokenStore(cfg.Admin.TokenTTL())

	// Compose top-level router: public landing-page routes + admin routes,
	// registered on one router.
	topRouter := chi.NewRouter()
	api.RegisterPublicRoutes(topRouter, api.PublicDeps{
		Store:  store,
		Reader: reader,
	})
	api.RegisterAdminRoutes(topRouter, api.AdminDeps{
		Store:    store,
		Tokens:   tokens,
		Password: cfg.Admin.Password,
		Runner:   generator,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: topRouter,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Scheduler: one generation at boot, then on the cron cadence.
	g.Go(func() error {
		scheduler.Run(gCtx)
		return nil
	})

	g.Go(func() error {
		slog.Info("gamehall listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Shut the server down when the context ends (signal or server error).
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	slog.Info("shut down")
	return err
}
