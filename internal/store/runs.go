package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// LastImport returns the most recent import run.
func (s *SQLiteStore) LastImport(ctx context.Context) (*ImportRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastImport(ctx)
}

// Status reads the count and the last import under one read lock, so both
// describe the same load.
func (s *SQLiteStore) Status(ctx context.Context) (*Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, err := s.count(ctx)
	if err != nil {
		return nil, err
	}

	st := &Status{Records: n}
	run, err := s.lastImport(ctx)
	switch {
	case err == nil:
		st.LastImport = run
	case !errors.Is(err, ErrNoImport):
		return nil, err
	}
	return st, nil
}

// lastImport is LastImport without locking. Callers hold s.mu.
func (s *SQLiteStore) lastImport(ctx context.Context) (*ImportRun, error) {
	var (
		run      ImportRun
		loadedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, source, records, loaded_at FROM import_runs
		 ORDER BY rowid DESC LIMIT 1`,
	).Scan(&run.ID, &run.Source, &run.Records, &loadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoImport
	}
	if err != nil {
		return nil, fmt.Errorf("querying last import: %w", err)
	}

	run.LoadedAt, err = time.Parse(time.RFC3339Nano, loadedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing loaded_at %q: %w", loadedAt, err)
	}
	return &run, nil
}
