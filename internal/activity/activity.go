// Package activity keeps an append-only CSV log of member actions.
package activity

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Action names a logged member action.
type Action string

const (
	ActionInit          Action = "init"
	ActionLink          Action = "link"
	ActionAddExpense    Action = "add_expense"
	ActionDeleteExpense Action = "delete_expense"
)

// Valid reports whether a is one of the known actions.
func (a Action) Valid() bool {
	switch a {
	case ActionInit, ActionLink, ActionAddExpense, ActionDeleteExpense:
		return true
	}
	return false
}

// Entry is one row in activity.csv.
type Entry struct {
	Timestamp  time.Time
	Member     string
	Action     Action
	Details    string
	ExpenseID  string
	CommitHash string
}

// Header is the CSV header for activity.csv.
const Header = "timestamp,member,action,details,expense_id,commit_hash"

const (
	numFields     = 6
	logDir        = "logs"
	logFile       = "activity.csv"
	colTimestamp  = 0
	colMember     = 1
	colAction     = 2
	colDetails    = 3
	colExpenseID  = 4
	colCommitHash = 5
)

// Path returns the log location inside a project.
func Path(repoRoot string) string {
	return filepath.Join(repoRoot, logDir, logFile)
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.UTC().Format(time.RFC3339)
	row[colMember] = e.Member
	row[colAction] = string(e.Action)
	row[colDetails] = e.Details
	row[colExpenseID] = e.ExpenseID
	row[colCommitHash] = e.CommitHash
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	action := Action(record[colAction])
	if !action.Valid() {
		return Entry{}, fmt.Errorf("unknown action %q", record[colAction])
	}

	return Entry{
		Timestamp:  ts,
		Member:     record[colMember],
		Action:     action,
		Details:    record[colDetails],
		ExpenseID:  record[colExpenseID],
		CommitHash: record[colCommitHash],
	}, nil
}

// Append writes entries to <repoRoot>/logs/activity.csv, creating the file
// and header if needed.
func Append(repoRoot string, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	path := Path(repoRoot)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	needsHeader := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries, or nil if the log does not exist yet.
func Read(repoRoot string) ([]Entry, error) {
	f, err := os.Open(Path(repoRoot))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading activity CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Recent returns up to limit entries, newest first, optionally restricted to
// one member. A limit of zero or less means no limit.
func Recent(entries []Entry, member string, limit int) []Entry {
	var out []Entry
	for i := len(entries) - 1; i >= 0; i-- {
		if member != "" && entries[i].Member != member {
			continue
		}
		out = append(out, entries[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
