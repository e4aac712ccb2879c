package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/faithconnect/backend/internal/models"
	"github.com/anonto42/faithconnect/backend/internal/router"
	"github.com/anonto42/faithconnect/backend/internal/scheduler"
	"github.com/anonto42/faithconnect/backend/pkg/config"
	"github.com/anonto42/faithconnect/backend/pkg/logging"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the scheduled post promoter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	cfg := config.Load()
	log := logging.New(cfg.Env)
	slog.SetDefault(log)

	db, err := config.InitDB(cfg, log)
	if err != nil {
		return err
	}
	defer db.CloseDB(log)

	if err := models.AutoMigrate(db.Postgres); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Info("PostgreSQL auto-migrations completed")

	opts, cleanup, err := buildOptions(ctx, cfg, log, db)
	defer cleanup()
	if err != nil {
		return err
	}
	svcs := router.NewServices(cfg, log, db.Postgres, opts)

	var rdb redis.Cmdable
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		rdb = client
	}
	e := router.New(cfg, log, svcs, rdb)

	if cfg.PromoteEnabled {
		promoter, err := scheduler.NewPromoter(svcs.Posts, cfg.PromoteSchedule, log)
		if err != nil {
			return err
		}
		promoter.Start()
		defer promoter.Stop()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
