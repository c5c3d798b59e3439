package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"voucherbot/internal/bootstrap"
)

func newSQLCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sql <question>",
		Short: "Print the SQL a question would run, without touching the database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			router, err := bootstrap.NewRouter(cfg, bootstrap.Storage{}, opts.logger())
			if err != nil {
				return err
			}

			plan, err := router.Plan(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(plan)
			}

			fmt.Fprintf(out, "annotator: %s\n", plan.Provider)
			fmt.Fprintf(out, "field:     %s\n", orNone(plan.Field))
			fmt.Fprintf(out, "aggregate: %s\n", orNone(string(plan.Intent.Aggregate)))
			fmt.Fprintf(out, "query:     %s\n", plan.Query.Query)
			fmt.Fprintf(out, "params:    %v\n", plan.Query.Params)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full plan as JSON")
	return cmd
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
