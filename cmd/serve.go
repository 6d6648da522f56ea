package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"momo-dashboard/internal/api"
	"momo-dashboard/internal/store"
)

func newServeCommand(a *app) *cobra.Command {
	var (
		addr    string
		xmlPath string
		reload  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard JSON API",
		Long: `Serve the dashboard JSON API. When the database is empty, or --reload is
given, the configured XML backup is imported first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if changed(cmd, "addr") {
				a.cfg.ListenAddr = addr
			}
			if changed(cmd, "xml") {
				a.cfg.XMLPath = xmlPath
			}

			st, err := a.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := a.bootstrap(cmd.Context(), st, reload); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.serve(ctx, st)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :5000)")
	cmd.Flags().StringVar(&xmlPath, "xml", "", "SMS backup imported when the database is empty")
	cmd.Flags().BoolVar(&reload, "reload", false, "Re-import the XML backup before serving")

	return cmd
}

// bootstrap imports the configured backup when the store is empty or a
// reload was requested. A missing backup only matters for an explicit reload.
func (a *app) bootstrap(ctx context.Context, st store.Store, reload bool) error {
	if a.cfg.XMLPath == "" {
		if reload {
			return errors.New("--reload needs an XML backup path")
		}
		return nil
	}

	if !reload {
		n, err := st.Count(ctx)
		if err != nil {
			return fmt.Errorf("failed to count transactions: %w", err)
		}
		if n > 0 {
			return nil
		}
	}

	if _, err := os.Stat(a.cfg.XMLPath); errors.Is(err, fs.ErrNotExist) && !reload {
		a.log.Warn().Str("file", a.cfg.XMLPath).Msg("Database is empty and no SMS backup was found")
		return nil
	}

	_, err := importFile(ctx, st, a.cfg.XMLPath, a.cfg.Sender, a.log)
	return err
}

// serve runs the HTTP server until ctx is cancelled, then shuts it down.
func (a *app) serve(ctx context.Context, st store.Store) error {
	server := &http.Server{
		Addr:         a.cfg.ListenAddr,
		Handler:      api.NewHandler(st, a.log).Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", server.Addr).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	a.log.Info().Msg("Server exited")
	return nil
}
