package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"momo-dashboard/internal/parser"
	"momo-dashboard/internal/store"
)

func newImportCommand(a *app) *cobra.Command {
	var sender string

	cmd := &cobra.Command{
		Use:   "import <xml-file>",
		Short: "Classify an SMS backup and replace the stored transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if changed(cmd, "sender") {
				a.cfg.Sender = sender
			}

			st, err := a.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			run, err := importFile(cmd.Context(), st, args[0], a.cfg.Sender, a.log)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d transactions from %s (run %s)\n", run.Records, run.Source, run.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&sender, "sender", "s", "", "Only import messages from this sender address (e.g., 'M-Money')")

	return cmd
}

// importFile parses an XML backup and reloads the store with its records.
func importFile(ctx context.Context, st store.Store, path, sender string, log zerolog.Logger) (*store.ImportRun, error) {
	messages, err := parser.ReadFile(path, parser.Options{Sender: sender})
	if err != nil {
		return nil, fmt.Errorf("failed to parse SMS backup: %w", err)
	}

	transactions := parser.Import(messages)

	run, err := st.ResetAndLoad(ctx, transactions, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	log.Info().
		Str("file", path).
		Str("sender", sender).
		Int("messages", len(messages)).
		Int("records", run.Records).
		Str("run_id", run.ID).
		Msg("Import completed")

	return run, nil
}
