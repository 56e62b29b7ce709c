package expenses

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/juntos-app/juntos/internal/id"
	"github.com/juntos-app/juntos/internal/model"
)

// Store persists expenses. Implementations need not validate.
type Store interface {
	ListMonth(ctx context.Context, year, month int) ([]model.Expense, error)
	ListAll(ctx context.Context) ([]model.Expense, error)
	Insert(ctx context.Context, e model.Expense) error
	// Remove deletes the expense with the given ID and reports whether it existed.
	Remove(ctx context.Context, expenseID string) (bool, error)
}

const (
	expensesDir  = "expenses"
	expensesFile = "expenses.csv"
)

// CSVStore keeps one expenses.csv per month under <root>/expenses/YYYY/MM/.
type CSVStore struct {
	root string
}

// NewCSVStore creates a CSVStore rooted at a project directory.
func NewCSVStore(root string) *CSVStore {
	return &CSVStore{root: root}
}

// ListMonth reads all expenses for a given year/month.
func (s *CSVStore) ListMonth(_ context.Context, year, month int) ([]model.Expense, error) {
	return s.readFile(s.monthPath(year, month))
}

// ListAll reads every month file, oldest month first.
func (s *CSVStore) ListAll(ctx context.Context) ([]model.Expense, error) {
	dir := filepath.Join(s.root, expensesDir)
	var all []model.Expense
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == dir {
				return fs.SkipAll
			}
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || d.Name() != expensesFile {
			return nil
		}
		month, err := s.readFile(path)
		if err != nil {
			return err
		}
		all = append(all, month...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	return all, nil
}

// Insert appends e to its month file, creating the file and header if needed.
func (s *CSVStore) Insert(_ context.Context, e model.Expense) error {
	path := s.monthPath(e.Date.Year(), int(e.Date.Month()))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating expenses dir: %w", err)
	}

	// An empty file needs the header as much as a missing one.
	needsHeader := false
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		needsHeader = true
	case err != nil:
		return fmt.Errorf("checking expenses %s: %w", path, err)
	case info.Size() == 0:
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening expenses: %w", err)
	}
	defer f.Close()

	if needsHeader {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendExpenses(f, []model.Expense{e}); err != nil {
		return fmt.Errorf("appending expense: %w", err)
	}
	return nil
}

// Remove rewrites the month file named by the expense ID without that row.
func (s *CSVStore) Remove(ctx context.Context, expenseID string) (bool, error) {
	year, month, _, err := id.ParseExpenseID(expenseID)
	if err != nil {
		return false, err
	}

	existing, err := s.ListMonth(ctx, year, month)
	if err != nil {
		return false, err
	}

	kept := make([]model.Expense, 0, len(existing))
	for _, e := range existing {
		if e.ID != expenseID {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(existing) {
		return false, nil
	}

	path := s.monthPath(year, month)
	tmp, err := os.CreateTemp(filepath.Dir(path), ".expenses-*.csv")
	if err != nil {
		return false, fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteExpenses(tmp, kept); err != nil {
		tmp.Close()
		return false, fmt.Errorf("rewriting %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return false, fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return false, fmt.Errorf("replacing %s: %w", path, err)
	}
	return true, nil
}

func (s *CSVStore) readFile(path string) ([]model.Expense, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening expenses %s: %w", path, err)
	}
	defer f.Close()

	out, err := ReadExpenses(f)
	if err != nil {
		return nil, fmt.Errorf("reading expenses %s: %w", path, err)
	}
	return out, nil
}

func (s *CSVStore) monthPath(year, month int) string {
	return filepath.Join(s.root, expensesDir, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), expensesFile)
}
