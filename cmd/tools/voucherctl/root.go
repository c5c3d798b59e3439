package main

import (
	"github.com/spf13/cobra"

	"voucherbot/internal/common/config"
	"voucherbot/internal/common/logger"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "voucherctl",
		Short: "Inspect and exercise the voucher chatbot pipeline",
		Long: `voucherctl runs the voucher chatbot pipeline from a terminal.

Examples:
  voucherctl sql "what is the total claim amount for TXN_2024001"
  voucherctl ask "status of TXN_2024001"
  voucherctl synonyms validate configs/synonyms.json
  voucherctl synonyms list`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to a config file (defaults to configs/config.yaml lookup)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log pipeline stages to stderr")

	root.AddCommand(
		newSQLCmd(opts),
		newAskCmd(opts),
		newSynonymsCmd(),
	)
	return root
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.configPath != "" {
		return config.LoadFromFile(o.configPath)
	}
	return config.Load()
}

func (o *rootOptions) logger() logger.Logger {
	if o.verbose {
		return logger.NewStructured("debug", "console", "stderr")
	}
	return logger.NewNoOpLogger()
}
