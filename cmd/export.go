package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"momo-dashboard/internal/writer"
)

func newExportCommand(a *app) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write stored transactions to one CSV file per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Create output directory if it doesn't exist
			if err := os.MkdirAll(outputDir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			st, err := a.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			txns, err := st.Query(cmd.Context(), "")
			if err != nil {
				return err
			}

			files, err := writer.New(outputDir).Write(txns)
			if err != nil {
				return fmt.Errorf("failed to write transactions: %w", err)
			}

			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			a.log.Info().Int("files", len(files)).Int("records", len(txns)).Str("dir", outputDir).Msg("Export completed")
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "Output directory for CSV files (created if not exists)")

	return cmd
}
