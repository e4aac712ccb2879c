package main

import (
	"fmt"

	"github.com/anonto42/faithconnect/backend/internal/router"
	"github.com/anonto42/faithconnect/backend/pkg/config"
	"github.com/anonto42/faithconnect/backend/pkg/logging"
	"github.com/spf13/cobra"
)

// newPromoteCommand publishes due scheduled posts once, for deployments
// that drive promotion from an external cron instead of PROMOTE_ENABLED.
func newPromoteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "promote",
		Short: "Publish scheduled posts whose time has come and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := logging.New(cfg.Env)

			db, err := config.InitDB(cfg, log)
			if err != nil {
				return err
			}
			defer db.CloseDB(log)

			opts, cleanup, err := buildOptions(cmd.Context(), cfg, log, db)
			defer cleanup()
			if err != nil {
				return err
			}
			svcs := router.NewServices(cfg, log, db.Postgres, opts)

			n, err := svcs.Posts.PromoteDuePosts(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "published %d scheduled post(s)\n", n)
			return nil
		},
	}
}
