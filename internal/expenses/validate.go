package expenses

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/juntos-app/juntos/internal/model"
)

// ValidationError describes a single rejected field.
type ValidationError struct {
	Field       string
	ExpenseID   string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s [%s]: %s", e.Field, e.ExpenseID, e.Description)
}

var hundred = decimal.NewFromInt(100)

// ValidateExpense checks a new expense against the couple it is recorded for.
func ValidateExpense(e model.Expense, couple model.Couple) []ValidationError {
	var errs []ValidationError
	add := func(field, desc string) {
		errs = append(errs, ValidationError{Field: field, ExpenseID: e.ID, Description: desc})
	}

	if strings.TrimSpace(e.Description) == "" {
		add("description", "description can't be empty")
	}

	if !e.Amount.IsPositive() {
		add("amount", fmt.Sprintf("amount %s must be positive", e.Amount))
	} else if cents := e.Amount.Mul(hundred); !cents.Equal(cents.Floor()) {
		add("amount", fmt.Sprintf("amount %s has more than 2 decimal places", e.Amount))
	}

	if e.Date.IsZero() {
		add("date", "date is required")
	}

	if !e.Category.Valid() {
		add("category", fmt.Sprintf("unknown category %q", e.Category))
	}

	if !couple.Has(e.PaidBy) {
		add("paid_by", fmt.Sprintf("payer %q is not a member of the couple", e.PaidBy))
	}

	if e.CoupleID != couple.ID {
		add("couple_id", fmt.Sprintf("couple %q does not match %q", e.CoupleID, couple.ID))
	}

	return errs
}

func joinValidation(verrs []ValidationError) error {
	msgs := make([]string, len(verrs))
	for i, ve := range verrs {
		msgs[i] = ve.Error()
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}
