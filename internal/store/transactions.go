package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"momo-dashboard/internal/models"
)

const transactionColumns = "id, date, transaction_type, amount, recipient, fee, body"

// ResetAndLoad drops the transactions table, recreates it and inserts records
// in one SQL transaction. A failure leaves the previous collection in place.
func (s *SQLiteStore) ResetAndLoad(ctx context.Context, records []models.Transaction, source string) (*ImportRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := recreateTransactions(ctx, tx); err != nil {
		return nil, err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO transactions (date, transaction_type, amount, recipient, fee, body)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return nil, fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		category := r.Category
		if strings.TrimSpace(category) == "" {
			category = models.CatUncategorized
		}
		if _, err := stmt.ExecContext(ctx,
			r.Date, category, nullInt(r.Amount), nullString(r.Counterparty), nullInt(r.Fee), r.Body,
		); err != nil {
			return nil, fmt.Errorf("inserting record %d: %w", i+1, err)
		}
	}

	run := &ImportRun{
		ID:       uuid.NewString(),
		Source:   source,
		Records:  len(records),
		LoadedAt: time.Now().UTC(),
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO import_runs (id, source, records, loaded_at) VALUES (?, ?, ?, ?)`,
		run.ID, run.Source, run.Records, run.LoadedAt.Format(time.RFC3339Nano),
	); err != nil {
		return nil, fmt.Errorf("recording import run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing import: %w", err)
	}
	return run, nil
}

// Aggregate groups stored transactions by category. Missing amounts count as 0.
func (s *SQLiteStore) Aggregate(ctx context.Context) ([]models.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT transaction_type, COUNT(*), COALESCE(SUM(amount), 0)
		 FROM transactions
		 GROUP BY transaction_type
		 ORDER BY transaction_type`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying summary: %w", err)
	}
	defer rows.Close()

	summaries := []models.Summary{}
	for rows.Next() {
		var sm models.Summary
		if err := rows.Scan(&sm.Category, &sm.Count, &sm.Total); err != nil {
			return nil, fmt.Errorf("scanning summary row: %w", err)
		}
		summaries = append(summaries, sm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating summary rows: %w", err)
	}
	return summaries, nil
}

// Query returns transactions in id order. With a filter it tries, in order,
// an exact match, a case-insensitive match and a substring match, returning
// the first tier that finds anything. Category labels have drifted in case
// and spacing between imports; the fallback tiers absorb that drift.
func (s *SQLiteStore) Query(ctx context.Context, filter string) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if filter == "" {
		return s.selectTransactions(ctx, "")
	}

	tiers := []struct {
		where string
		arg   string
	}{
		{"transaction_type = ?", filter},
		{"LOWER(transaction_type) = LOWER(?)", filter},
		{`transaction_type LIKE ? ESCAPE '\'`, "%" + escapeLike(filter) + "%"},
	}
	for _, tier := range tiers {
		txns, err := s.selectTransactions(ctx, tier.where, tier.arg)
		if err != nil {
			return nil, err
		}
		if len(txns) > 0 {
			return txns, nil
		}
	}
	return []models.Transaction{}, nil
}

// Categories lists distinct stored labels with their rune length and quoted
// form, which exposes stray whitespace or control characters.
func (s *SQLiteStore) Categories(ctx context.Context) ([]models.CategoryInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT transaction_type FROM transactions ORDER BY transaction_type",
	)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	infos := []models.CategoryInfo{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		infos = append(infos, models.CategoryInfo{
			Type:   name,
			Length: utf8.RuneCountInString(name),
			Repr:   strconv.Quote(name),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}
	return infos, nil
}

// Count returns the number of stored transactions.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count(ctx)
}

func (s *SQLiteStore) count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting transactions: %w", err)
	}
	return n, nil
}

// selectTransactions runs a SELECT over transactions. Callers hold s.mu.
// Driver errors are returned unchanged so the API can report them verbatim.
func (s *SQLiteStore) selectTransactions(ctx context.Context, where string, args ...any) ([]models.Transaction, error) {
	query := "SELECT " + transactionColumns + " FROM transactions"
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txns := []models.Transaction{}
	for rows.Next() {
		var (
			t         models.Transaction
			date      sql.NullString
			amount    sql.NullInt64
			recipient sql.NullString
			fee       sql.NullInt64
			body      sql.NullString
		)
		if err := rows.Scan(&t.ID, &date, &t.Category, &amount, &recipient, &fee, &body); err != nil {
			return nil, err
		}
		t.Date = date.String
		t.Counterparty = recipient.String
		t.Body = body.String
		if amount.Valid {
			t.Amount = &amount.Int64
		}
		if fee.Valid {
			t.Fee = &fee.Int64
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return txns, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func nullInt(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
