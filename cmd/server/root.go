package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anonto42/faithconnect/backend/internal/events"
	"github.com/anonto42/faithconnect/backend/internal/repositories"
	"github.com/anonto42/faithconnect/backend/internal/router"
	"github.com/anonto42/faithconnect/backend/internal/storage"
	"github.com/anonto42/faithconnect/backend/pkg/config"
	"github.com/anonto42/faithconnect/backend/pkg/firebase"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "faithconnect",
		Short: "FaithConnect API server",
		Long: `FaithConnect connects worshipers with religious leaders.

Without a subcommand the HTTP API is started, same as "faithconnect serve".
Configuration is read from the environment (and .env when present).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
	root.AddCommand(newServeCommand(), newMigrateCommand(), newPromoteCommand())
	return root
}

// buildOptions opens the optional integrations named in cfg. The returned
// cleanup func is always safe to call.
func buildOptions(ctx context.Context, cfg *config.Config, log *slog.Logger, db *config.DB) (router.Options, func(), error) {
	var opts router.Options
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.FirebaseCredentialsPath != "" {
		app, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, cfg.FirebaseStorageBucket)
		if err != nil {
			return opts, cleanup, err
		}
		opts.Verifier = app.AuthClient
		if app.StorageClient != nil {
			store, err := storage.NewFirebaseStore(app.StorageClient, app.Bucket, "uploads/")
			if err != nil {
				return opts, cleanup, err
			}
			opts.Store = store
			log.Info("media uploads go to firebase storage", "bucket", app.Bucket)
		}
		log.Info("firebase initialized")
	} else {
		log.Warn("FIREBASE_CREDENTIALS_PATH not set, firebase login disabled")
	}

	if opts.Store == nil {
		baseURL := cfg.PublicBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:" + cfg.Port
		}
		store, err := storage.NewLocalStore(cfg.UploadDir, baseURL)
		if err != nil {
			return opts, cleanup, fmt.Errorf("prepare upload dir: %w", err)
		}
		opts.Store = store
		log.Info("media uploads go to local disk", "dir", store.Dir)
	}

	if db.Mongo != nil {
		activity := repositories.NewMongoActivityRepository(db.Mongo.Database(cfg.MongoDatabase))
		opts.Mirrors = append(opts.Mirrors, events.NewMongoSink(activity))
		log.Info("activity mirror enabled", "database", cfg.MongoDatabase)
	}

	if cfg.AMQPURL != "" {
		sink, err := events.NewAMQPSink(cfg.AMQPURL, cfg.AMQPQueue)
		if err != nil {
			return opts, cleanup, err
		}
		closers = append(closers, func() {
			if err := sink.Close(); err != nil {
				log.Error("close rabbitmq", "error", err)
			}
		})
		opts.Mirrors = append(opts.Mirrors, sink)
		log.Info("notification queue enabled", "queue", cfg.AMQPQueue)
	}

	return opts, cleanup, nil
}
