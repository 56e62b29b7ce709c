package commands_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juntos-app/juntos/internal/activity"
)

func addExpense(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := runJuntos(t, append([]string{"expense", "add", "--repo", dir}, args...)...)
	require.NoError(t, err)
	return out
}

func TestExpenseAdd(t *testing.T) {
	dir := newLedger(t)

	out := addExpense(t, dir, "--as", "Ana", "--amount", "100", "--description", "Groceries",
		"--category", "food", "--date", "2025-01-10")
	assert.Contains(t, out, "Added 2025-01-001")
	assert.Contains(t, out, "$100.00")

	out = addExpense(t, dir, "--as", "ben", "--amount", "12.5", "--description", "Book",
		"--date", "2025-01-12", "--personal")
	assert.Contains(t, out, "Added 2025-01-002")
	assert.Contains(t, out, "personal")

	assert.FileExists(t, filepath.Join(dir, "expenses", "2025", "01", "expenses.csv"))

	entries, err := activity.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, activity.ActionAddExpense, entries[3].Action)
	assert.Equal(t, "2025-01-002", entries[3].ExpenseID)
}

func TestExpenseAdd_Invalid(t *testing.T) {
	dir := newLedger(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown member", []string{"--as", "Cleo", "--amount", "10", "--description", "x"}, "not a member"},
		{"bad amount", []string{"--as", "Ana", "--amount", "ten", "--description", "x"}, "parsing amount"},
		{"negative amount", []string{"--as", "Ana", "--amount", "-5", "--description", "x"}, "validation failed"},
		{"bad category", []string{"--as", "Ana", "--amount", "5", "--description", "x", "--category", "travel"}, "validation failed"},
		{"bad date", []string{"--as", "Ana", "--amount", "5", "--description", "x", "--date", "10/01/2025"}, "parsing date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runJuntos(t, append([]string{"expense", "add", "--repo", dir}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	out, err := runJuntos(t, "expense", "list", "--repo", dir, "--period", "all")
	require.NoError(t, err)
	assert.Contains(t, out, "No expenses")
}

func TestExpenseRm(t *testing.T) {
	dir := newLedger(t)
	addExpense(t, dir, "--as", "Ana", "--amount", "30", "--description", "Cinema", "--date", "2025-02-01")

	out, err := runJuntos(t, "expense", "rm", "--repo", dir, "--as", "Ben", "2025-02-001")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 2025-02-001")

	_, err = runJuntos(t, "expense", "rm", "--repo", dir, "--as", "Ben", "2025-02-001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestExpenseList(t *testing.T) {
	dir := newLedger(t)
	addExpense(t, dir, "--as", "Ana", "--amount", "100", "--description", "Groceries", "--category", "food", "--date", "2025-01-10")
	addExpense(t, dir, "--as", "Ben", "--amount", "40", "--description", "Electricity", "--category", "bills", "--date", "2025-03-02")

	out, err := runJuntos(t, "expense", "list", "--repo", dir, "--period", "all")
	require.NoError(t, err)
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "Electricity")
	assert.Contains(t, out, "Ben")
	assert.Less(t, strings.Index(out, "Electricity"), strings.Index(out, "Groceries"), "newest first")

	_, err = runJuntos(t, "expense", "list", "--repo", dir, "--period", "fortnight")
	require.Error(t, err)
}

func TestLog(t *testing.T) {
	dir := newLedger(t)
	addExpense(t, dir, "--as", "Ana", "--amount", "30", "--description", "Cinema", "--date", "2025-02-01")
	_, err := runJuntos(t, "expense", "rm", "--repo", dir, "--as", "Ben", "2025-02-001")
	require.NoError(t, err)

	out, err := runJuntos(t, "log", "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "delete_expense")
	assert.Contains(t, out, "add_expense")
	assert.Less(t, strings.Index(out, "delete_expense"), strings.Index(out, "add_expense"), "newest first")

	out, err = runJuntos(t, "log", "--repo", dir, "--as", "Ana", "-n", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "add_expense")
	assert.NotContains(t, out, "init")
}
