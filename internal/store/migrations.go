package store

import (
	"context"
	"database/sql"
	"fmt"
)

const createTransactionsTable = `
CREATE TABLE IF NOT EXISTS transactions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	date TEXT,
	transaction_type TEXT NOT NULL,
	amount INTEGER,
	recipient TEXT,
	fee INTEGER,
	body TEXT
)`

const createImportRunsTable = `
CREATE TABLE IF NOT EXISTS import_runs (
	id TEXT PRIMARY KEY,
	source TEXT NOT NULL DEFAULT '',
	records INTEGER NOT NULL,
	loaded_at TEXT NOT NULL
)`

// migrate creates the tables a fresh database needs.
func (s *SQLiteStore) migrate(ctx context.Context) error {
	for _, ddl := range []string{createTransactionsTable, createImportRunsTable} {
		if _, err := s.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}

// recreateTransactions drops and recreates the transactions table inside tx.
// Dropping the table also clears its AUTOINCREMENT counter, so ids restart at 1.
func recreateTransactions(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS transactions"); err != nil {
		return fmt.Errorf("dropping transactions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, createTransactionsTable); err != nil {
		return fmt.Errorf("creating transactions: %w", err)
	}
	return nil
}
