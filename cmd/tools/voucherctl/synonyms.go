package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"voucherbot/pkg/synonyms"
)

func newSynonymsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "synonyms",
		Short: "Inspect synonym tables",
	}

	validate := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a synonym file against the schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			table, err := synonyms.Parse(data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (version %s, %d entries, %d columns)\n",
				args[0], table.Version, table.Len(), len(table.Columns()))
			return nil
		},
	}

	var path string
	list := &cobra.Command{
		Use:   "list",
		Short: "Print phrases in match order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := synonyms.Load(path)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "#\tPHRASE\tCOLUMN")
			for i, e := range table.Entries {
				fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, e.Phrase, e.Column)
			}
			return w.Flush()
		},
	}
	list.Flags().StringVarP(&path, "file", "f", "", "Synonym file (defaults to the built-in table)")

	cmd.AddCommand(validate, list)
	return cmd
}
