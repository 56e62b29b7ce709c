package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juntos-app/juntos/internal/expenses"
	"github.com/juntos-app/juntos/internal/model"
)

var _ expenses.Store = (*SQLiteStore)(nil)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "data", "juntos.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestSQLiteStore_InsertAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	e := model.Expense{
		ID:          "2025-01-001",
		Date:        time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Description: "Supermercado",
		Amount:      dec("84.30"),
		Category:    model.CategoryFood,
		PaidBy:      "ana",
		Shared:      true,
		CoupleID:    "c1",
		CreatedAt:   time.Date(2025, 1, 15, 19, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Insert(ctx, e))

	got, err := store.ListMonth(ctx, 2025, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, e.ID, got[0].ID)
	assert.True(t, e.Date.Equal(got[0].Date))
	assert.True(t, e.Amount.Equal(got[0].Amount))
	assert.Equal(t, e.Category, got[0].Category)
	assert.True(t, got[0].Shared)
	assert.True(t, e.CreatedAt.Equal(got[0].CreatedAt))

	other, err := store.ListMonth(ctx, 2025, 2)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestSQLiteStore_DuplicateID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	e := model.Expense{ID: "2025-01-001", Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Amount: dec("1"), CoupleID: "c1"}
	require.NoError(t, store.Insert(ctx, e))
	assert.Error(t, store.Insert(ctx, e))
}

func TestSQLiteStore_Remove(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, model.Expense{ID: "2025-01-001", Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Amount: dec("1"), CoupleID: "c1"}))

	ok, err := store.Remove(ctx, "2025-01-001")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Remove(ctx, "2025-01-001")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStore_WithService(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	couple := model.Couple{
		ID:      "c1",
		MemberA: model.Member{ID: "ana", Name: "Ana"},
		MemberB: model.Member{ID: "luis", Name: "Luis"},
	}
	svc := expenses.NewService(store, couple)

	first, err := svc.Add(ctx, expenses.AddParams{
		Date:        time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		Description: "Luz",
		Amount:      dec("61.20"),
		Category:    model.CategoryBills,
		PaidBy:      "luis",
		Shared:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-001", first.ID)

	second, err := svc.Add(ctx, expenses.AddParams{
		Date:        time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		Description: "Libro",
		Amount:      dec("18.00"),
		Category:    model.CategoryShopping,
		PaidBy:      "ana",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-002", second.ID)

	got, err := svc.ListExpenses(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.False(t, got[1].Shared)

	require.NoError(t, svc.Delete(ctx, first.ID))
	assert.ErrorIs(t, svc.Delete(ctx, first.ID), expenses.ErrNotFound)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "juntos.db")
	require.NoError(t, RunMigrations(path))
	require.NoError(t, RunMigrations(path))
}
