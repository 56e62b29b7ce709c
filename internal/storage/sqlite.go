// Package storage provides the SQLite expense store.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/juntos-app/juntos/internal/logger"
	"github.com/juntos-app/juntos/internal/model"

	_ "modernc.org/sqlite"
)

const dateFormat = "2006-01-02"

// SQLiteStore implements expenses.Store on a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at dbPath and
// migrates it.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

const selectColumns = `SELECT id, date, description, amount, category, paid_by, shared, couple_id, created_at FROM expenses`

// ListMonth returns a month's expenses ordered by ID.
func (s *SQLiteStore) ListMonth(ctx context.Context, year, month int) ([]model.Expense, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` WHERE year = ? AND month = ? ORDER BY id`, year, month)
	if err != nil {
		return nil, fmt.Errorf("query month %04d-%02d: %w", year, month, err)
	}
	return scanExpenses(rows)
}

// ListAll returns every expense ordered by ID.
func (s *SQLiteStore) ListAll(ctx context.Context) ([]model.Expense, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	return scanExpenses(rows)
}

// Insert stores one expense.
func (s *SQLiteStore) Insert(ctx context.Context, e model.Expense) error {
	var createdAt string
	if !e.CreatedAt.IsZero() {
		createdAt = e.CreatedAt.UTC().Format(time.RFC3339)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (id, year, month, date, description, amount, category, paid_by, shared, couple_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.Date.Year(),
		int(e.Date.Month()),
		e.Date.Format(dateFormat),
		e.Description,
		e.Amount.StringFixed(2),
		string(e.Category),
		e.PaidBy,
		e.Shared,
		e.CoupleID,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense %s: %w", e.ID, err)
	}

	l := logger.FromContext(ctx)
	l.Debug().
		Str("component", "sqlite").
		Str("id", e.ID).
		Str("amount", e.Amount.StringFixed(2)).
		Str("paid_by", e.PaidBy).
		Bool("shared", e.Shared).
		Msg("expense saved")
	return nil
}

// Remove deletes an expense and reports whether a row was removed.
func (s *SQLiteStore) Remove(ctx context.Context, expenseID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, expenseID)
	if err != nil {
		return false, fmt.Errorf("delete expense %s: %w", expenseID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete expense %s: %w", expenseID, err)
	}
	l := logger.FromContext(ctx)
	l.Debug().Str("component", "sqlite").Str("id", expenseID).Int64("rows", n).Msg("expense deleted")
	return n > 0, nil
}

func scanExpenses(rows *sql.Rows) ([]model.Expense, error) {
	defer rows.Close()

	var out []model.Expense
	for rows.Next() {
		var (
			e                       model.Expense
			date, amount, createdAt string
			category                string
		)
		if err := rows.Scan(&e.ID, &date, &e.Description, &amount, &category, &e.PaidBy, &e.Shared, &e.CoupleID, &createdAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}

		d, err := time.Parse(dateFormat, date)
		if err != nil {
			return nil, fmt.Errorf("expense %s: parsing date %q: %w", e.ID, date, err)
		}
		e.Date = d

		e.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("expense %s: parsing amount %q: %w", e.ID, amount, err)
		}

		if createdAt != "" {
			e.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
			if err != nil {
				return nil, fmt.Errorf("expense %s: parsing created_at %q: %w", e.ID, createdAt, err)
			}
		}
		e.Category = model.Category(category)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}
