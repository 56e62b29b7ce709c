package expenses

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/juntos-app/juntos/internal/model"
)

// Header is the CSV header for expenses.csv.
const Header = "expense_id,date,description,amount,category,paid_by,shared,couple_id,created_at"

const (
	numFields    = 9
	dateFormat   = "2006-01-02"
	colID        = 0
	colDate      = 1
	colDesc      = 2
	colAmount    = 3
	colCategory  = 4
	colPaidBy    = 5
	colShared    = 6
	colCoupleID  = 7
	colCreatedAt = 8
)

// ReadExpenses reads all expenses from an expenses.csv reader.
func ReadExpenses(r io.Reader) ([]model.Expense, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading expenses CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var out []model.Expense
	for i, rec := range records[1:] {
		e, err := UnmarshalExpense(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, e)
	}
	return out, nil
}

// WriteExpenses writes expenses to w, header first.
func WriteExpenses(w io.Writer, expenses []model.Expense) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range expenses {
		if err := cw.Write(MarshalExpense(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// AppendExpenses appends rows to an existing expenses.csv (no header).
func AppendExpenses(w io.Writer, expenses []model.Expense) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, e := range expenses {
		if err := cw.Write(MarshalExpense(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalExpense converts an Expense to a CSV row.
func MarshalExpense(e model.Expense) []string {
	row := make([]string, numFields)
	row[colID] = e.ID
	row[colDate] = e.Date.Format(dateFormat)
	row[colDesc] = e.Description
	row[colAmount] = e.Amount.StringFixed(2)
	row[colCategory] = string(e.Category)
	row[colPaidBy] = e.PaidBy
	row[colShared] = strconv.FormatBool(e.Shared)
	row[colCoupleID] = e.CoupleID
	if !e.CreatedAt.IsZero() {
		row[colCreatedAt] = e.CreatedAt.UTC().Format(time.RFC3339)
	}
	return row
}

// UnmarshalExpense converts a CSV row to an Expense.
func UnmarshalExpense(record []string) (model.Expense, error) {
	if len(record) != numFields {
		return model.Expense{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Expense{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Expense{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	shared, err := strconv.ParseBool(record[colShared])
	if err != nil {
		return model.Expense{}, fmt.Errorf("parsing shared %q: %w", record[colShared], err)
	}

	var createdAt time.Time
	if record[colCreatedAt] != "" {
		createdAt, err = time.Parse(time.RFC3339, record[colCreatedAt])
		if err != nil {
			return model.Expense{}, fmt.Errorf("parsing created_at %q: %w", record[colCreatedAt], err)
		}
	}

	return model.Expense{
		ID:          record[colID],
		Date:        date,
		Description: record[colDesc],
		Amount:      amount,
		Category:    model.Category(record[colCategory]),
		PaidBy:      record[colPaidBy],
		Shared:      shared,
		CoupleID:    record[colCoupleID],
		CreatedAt:   createdAt,
	}, nil
}
