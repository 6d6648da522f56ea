package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"momo-dashboard/internal/store"
	"momo-dashboard/internal/writer"
)

func newSummaryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show count, total and average amount per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := cmd.Context()
			rows, err := st.Aggregate(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := writer.WriteSummary(out, rows); err != nil {
				return err
			}

			run, err := st.LastImport(ctx)
			switch {
			case errors.Is(err, store.ErrNoImport):
				fmt.Fprintln(out, "\nNo import has been run.")
			case err != nil:
				return err
			default:
				fmt.Fprintf(out, "\nLast import: %s (%d records) at %s\n",
					run.Source, run.Records, run.LoadedAt.Local().Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}

func newTransactionsCommand(a *app) *cobra.Command {
	var (
		txType string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List stored transactions, optionally filtered by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			txns, err := st.Query(cmd.Context(), txType)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(txns)
			}
			return writer.WriteTable(cmd.OutOrStdout(), txns)
		},
	}

	cmd.Flags().StringVarP(&txType, "type", "t", "", "Category filter (exact, then case-insensitive, then substring)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")

	return cmd
}
