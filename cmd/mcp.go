package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"momo-dashboard/internal/mcp"
)

func newMCPCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the dashboard queries as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := mcp.NewServer(mcp.ServerConfig{Store: st, Version: Version})
			a.log.Info().Str("db", st.Path()).Msg("Starting MCP server on stdio")
			return mcp.ServeStdio(ctx, srv, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
