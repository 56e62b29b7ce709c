package activity

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func testEntry() Entry {
	return Entry{
		Timestamp:  testTime,
		Member:     "ana",
		Action:     ActionAddExpense,
		Details:    "Supermercado 84.30 shared",
		ExpenseID:  "2025-01-001",
		CommitHash: "abc1234",
	}
}

func TestAppend_NewFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ana", entries[0].Member)
	assert.Equal(t, ActionAddExpense, entries[0].Action)
}

func TestAppend_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	e2 := testEntry()
	e2.Member = "luis"
	e2.Action = ActionDeleteExpense
	require.NoError(t, Append(dir, []Entry{e2}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "ana", entries[0].Member)
	assert.Equal(t, ActionDeleteExpense, entries[1].Action)

	data, err := os.ReadFile(Path(dir))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), Header), "header written once")
}

func TestAppend_Empty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, nil))

	_, err := os.Stat(Path(dir))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRead_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	original := testEntry()
	original.Details = `Cena, "especial"`
	require.NoError(t, Append(dir, []Entry{original}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, original.Timestamp.Equal(entries[0].Timestamp))
	assert.Equal(t, original.Details, entries[0].Details)
	assert.Equal(t, original.ExpenseID, entries[0].ExpenseID)
	assert.Equal(t, original.CommitHash, entries[0].CommitHash)
}

func TestRead_NoFile(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUnmarshalEntry_Errors(t *testing.T) {
	_, err := UnmarshalEntry([]string{"a", "b"})
	assert.Error(t, err)

	_, err = UnmarshalEntry([]string{"not-a-time", "ana", "init", "", "", ""})
	assert.Error(t, err)
}

func TestUnmarshalEntry_UnknownAction(t *testing.T) {
	_, err := UnmarshalEntry([]string{"2025-01-15T10:30:00Z", "ana", "edit_expense", "", "", ""})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown action")
}

func TestRecent(t *testing.T) {
	entries := []Entry{
		{Member: "ana", Action: ActionInit},
		{Member: "luis", Action: ActionLink},
		{Member: "ana", Action: ActionAddExpense, ExpenseID: "2025-01-001"},
		{Member: "luis", Action: ActionAddExpense, ExpenseID: "2025-01-002"},
	}

	tests := []struct {
		name   string
		member string
		limit  int
		want   []Action
	}{
		{"all newest first", "", 0, []Action{ActionAddExpense, ActionAddExpense, ActionLink, ActionInit}},
		{"limited", "", 2, []Action{ActionAddExpense, ActionAddExpense}},
		{"one member", "ana", 0, []Action{ActionAddExpense, ActionInit}},
		{"unknown member", "cleo", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []Action
			for _, e := range Recent(entries, tt.member, tt.limit) {
				got = append(got, e.Action)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
