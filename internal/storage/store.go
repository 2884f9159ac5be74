// Package storage persists reference data to SQLite. Every batch is written
// in a single transaction.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	_ "modernc.org/sqlite"

	"github.com/cleared-dev/chartseed/internal/model"
)

const dateFormat = "2006-01-02"

// Tables lists every table a batch writes to, in insertion order. They are
// cleared in reverse order.
var Tables = []string{
	"journal",
	"balance_sheet",
	"income_statement",
	"account",
	"computation",
	"computation_income_statement",
	"record",
	"record_row",
}

// Store is a SQLite-backed batch writer.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and migrates it.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if err := RunMigrations(path); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// WriteBatch replaces the stored reference data with batch. Existing rows
// are deleted and every record of batch is inserted in one transaction:
// either the whole replacement is committed or the previous data is kept.
func (s *Store) WriteBatch(ctx context.Context, batch model.Batch) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range slices.Backward(Tables) {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	inserts := []struct {
		table string
		query string
		n     int
		args  func(i int) []any
	}{
		{
			"journal",
			`INSERT INTO journal (id, code, label) VALUES (?, ?, ?)`,
			len(batch.Journals),
			func(i int) []any {
				j := batch.Journals[i]
				return []any{j.ID, j.Code, j.Label}
			},
		},
		{
			"balance_sheet",
			`INSERT INTO balance_sheet (id, id_parent, side, number, label) VALUES (?, ?, ?, ?, ?)`,
			len(batch.BalanceSheets),
			func(i int) []any {
				l := batch.BalanceSheets[i]
				return []any{l.ID, nullable(l.ParentID), string(l.Side), l.Number, l.Label}
			},
		},
		{
			"income_statement",
			`INSERT INTO income_statement (id, id_parent, number, label) VALUES (?, ?, ?, ?)`,
			len(batch.IncomeStatements),
			func(i int) []any {
				l := batch.IncomeStatements[i]
				return []any{l.ID, nullable(l.ParentID), l.Number, l.Label}
			},
		},
		{
			"account",
			`INSERT INTO account (id, id_parent, id_balance_sheet, id_income_statement, number, label, type, is_class, is_mandatory, is_selectable)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			len(batch.Accounts),
			func(i int) []any {
				a := batch.Accounts[i]
				return []any{a.ID, nullable(a.ParentID), nullable(a.BalanceSheetID), nullable(a.IncomeStatementID),
					a.Number, a.Label, string(a.Type), a.IsClass, a.IsMandatory, a.IsSelectable}
			},
		},
		{
			"computation",
			`INSERT INTO computation (id, number, label) VALUES (?, ?, ?)`,
			len(batch.Computations),
			func(i int) []any {
				c := batch.Computations[i]
				return []any{c.ID, c.Number, c.Label}
			},
		},
		{
			"computation_income_statement",
			`INSERT INTO computation_income_statement (id, id_computation, id_income_statement, operation, position) VALUES (?, ?, ?, ?, ?)`,
			len(batch.ComputationIncomeStatements),
			func(i int) []any {
				l := batch.ComputationIncomeStatements[i]
				return []any{l.ID, l.ComputationID, l.IncomeStatementID, string(l.Operation), l.Position}
			},
		},
		{
			"record",
			`INSERT INTO record (id, id_journal, label, date) VALUES (?, ?, ?, ?)`,
			len(batch.Records),
			func(i int) []any {
				r := batch.Records[i]
				return []any{r.ID, nullable(r.JournalID), r.Label, r.Date.Format(dateFormat)}
			},
		},
		{
			"record_row",
			`INSERT INTO record_row (id, id_record, id_account, label, debit, credit) VALUES (?, ?, ?, ?, ?, ?)`,
			len(batch.RecordRows),
			func(i int) []any {
				r := batch.RecordRows[i]
				return []any{r.ID, r.RecordID, r.AccountID, r.Label, r.Debit.String(), r.Credit.String()}
			},
		},
	}

	for _, ins := range inserts {
		if ins.n == 0 {
			continue
		}
		if err = insertAll(ctx, tx, ins.query, ins.n, ins.args); err != nil {
			return fmt.Errorf("inserting into %s: %w", ins.table, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func insertAll(ctx context.Context, tx *sql.Tx, query string, n int, args func(i int) []any) error {
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i := range n {
		if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Count returns the number of rows in table, which must be one of Tables.
func (s *Store) Count(ctx context.Context, table string) (int, error) {
	if !slices.Contains(Tables, table) {
		return 0, fmt.Errorf("unknown table %q", table)
	}

	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s: %w", table, err)
	}
	return n, nil
}

// AccountParent returns the number of the parent of the account with the
// given number, or "" for a top-level account.
func (s *Store) AccountParent(ctx context.Context, number string) (string, error) {
	var parent sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT p.number FROM account a
		LEFT JOIN account p ON p.id = a.id_parent
		WHERE a.number = ?`, number).Scan(&parent)
	if err != nil {
		return "", fmt.Errorf("querying parent of account %s: %w", number, err)
	}
	return parent.String, nil
}
