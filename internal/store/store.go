// Package store persists classified transactions in SQLite and answers the
// dashboard's read queries.
//
// The transactions table is rebuilt wholesale on every import. A reload runs
// inside one SQL transaction and under the write half of a RWMutex, so
// readers observe either the previous collection or the new one in full.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"momo-dashboard/internal/models"

	_ "modernc.org/sqlite"
)

// DefaultDBPath is the database file used when none is configured.
const DefaultDBPath = "momo_transactions.db"

// ErrNoImport is returned by LastImport before the first load.
var ErrNoImport = errors.New("no import has been run")

// ImportRun records one ResetAndLoad call.
type ImportRun struct {
	ID       string    `json:"id"`
	Source   string    `json:"source"`
	Records  int       `json:"records"`
	LoadedAt time.Time `json:"loaded_at"`
}

// Status is a consistent snapshot of the stored collection. LastImport is
// nil before the first load.
type Status struct {
	Records    int64      `json:"records"`
	LastImport *ImportRun `json:"last_import"`
}

// Config holds configuration for New.
type Config struct {
	// DBPath is a file path, or ":memory:" for a private in-memory database.
	DBPath string
}

// Store is the persistence boundary used by the CLI, HTTP and MCP layers.
type Store interface {
	// ResetAndLoad replaces every stored transaction with records. IDs are
	// reassigned from 1 in slice order.
	ResetAndLoad(ctx context.Context, records []models.Transaction, source string) (*ImportRun, error)

	// Aggregate returns count and amount total per category, ordered by category.
	Aggregate(ctx context.Context) ([]models.Summary, error)

	// Query lists transactions by category. An empty filter returns all of them.
	Query(ctx context.Context, filter string) ([]models.Transaction, error)

	// Categories lists the distinct stored category labels.
	Categories(ctx context.Context) ([]models.CategoryInfo, error)

	// Count returns the number of stored transactions.
	Count(ctx context.Context) (int64, error)

	// LastImport returns the most recent import run, or ErrNoImport.
	LastImport(ctx context.Context) (*ImportRun, error)

	// Status returns the record count and last import read together.
	Status(ctx context.Context) (*Status, error)

	Close() error
}

var _ Store = (*SQLiteStore)(nil)

// SQLiteStore implements Store on modernc.org/sqlite.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string

	// mu serializes reloads against reads.
	mu sync.RWMutex
}

// New opens (creating if needed) the database at cfg.DBPath.
func New(ctx context.Context, cfg Config) (*SQLiteStore, error) {
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBPath
	}

	inMemory := cfg.DBPath == ":memory:"
	if !inMemory {
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("creating db directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Every connection to ":memory:" is a separate database.
	if inMemory {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	s := &SQLiteStore{db: db, dbPath: cfg.DBPath}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Path returns the database location.
func (s *SQLiteStore) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
