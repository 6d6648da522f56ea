package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"momo-dashboard/internal/config"
	"momo-dashboard/internal/logger"
	"momo-dashboard/internal/store"
)

// Version is reported by --version and the MCP server info.
var Version = "dev"

// app carries the resolved settings shared by every subcommand.
type app struct {
	configPath string
	dbPath     string
	logLevel   string

	cfg *config.Config
	log zerolog.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "momo",
		Short:   "Classify mobile-money SMS backups and serve a transaction dashboard",
		Long:    `A CLI tool to import MoMo SMS backup XML files into SQLite, summarize them and serve the dashboard API.`,
		Version: Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default "+config.DefaultPath+" if present)")
	rootCmd.PersistentFlags().StringVar(&a.dbPath, "db", "", "SQLite database path")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newImportCommand(a),
		newServeCommand(a),
		newSummaryCommand(a),
		newTransactionsCommand(a),
		newExportCommand(a),
		newMCPCommand(a),
	)

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// setup resolves configuration with flag > env > file > default precedence
// and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Resolve(a.configPath)
	if err != nil {
		return err
	}
	if changed(cmd, "db") {
		cfg.DBPath = a.dbPath
	}
	if changed(cmd, "log-level") {
		cfg.LogLevel = a.logLevel
	}

	a.cfg = cfg
	a.log = logger.NewConsole(cmd.ErrOrStderr(), cfg.LogLevel)
	return nil
}

// openStore opens the configured database. Callers close it.
func (a *app) openStore(cmd *cobra.Command) (*store.SQLiteStore, error) {
	st, err := store.New(cmd.Context(), store.Config{DBPath: a.cfg.DBPath})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	a.log.Debug().Str("db", st.Path()).Msg("Database opened")
	return st, nil
}

func changed(cmd *cobra.Command, name string) bool {
	f := cmd.Flag(name)
	return f != nil && f.Changed
}
