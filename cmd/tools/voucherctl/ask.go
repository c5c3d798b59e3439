package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"voucherbot/internal/bootstrap"
	"voucherbot/internal/common/database"
	routeresponse "voucherbot/internal/pipeline/chat/route-response"
)

func newAskCmd(opts *rootOptions) *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a question through the full pipeline",
		Long: `Answer a question the same way POST /get does. Questions routed to
storage need the configured database to be reachable.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			db, err := database.NewSQL(cfg.Database)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()
			if err := db.Ping(ctx); err != nil {
				return fmt.Errorf("ping database: %w", err)
			}

			storage := bootstrap.Storage{DB: db.DB}
			if cfg.Chatbot.CacheEnabled && !noCache {
				redis, err := database.NewRedis(cfg.Database.Redis)
				if err != nil {
					return fmt.Errorf("open redis: %w", err)
				}
				defer redis.Close()
				storage.Cache = redis
			} else {
				cfg.Chatbot.CacheEnabled = false
			}

			router, err := bootstrap.NewRouter(cfg, storage, opts.logger())
			if err != nil {
				return err
			}

			out := router.Execute(ctx, &routeresponse.Input{Message: strings.Join(args, " ")})
			if opts.verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "route=%s errorCode=%s\n", out.Route, orNone(out.ErrorCode))
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Response)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Skip the Redis result cache")
	return cmd
}
