package expenses

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/juntos-app/juntos/internal/id"
	"github.com/juntos-app/juntos/internal/logger"
	"github.com/juntos-app/juntos/internal/model"
)

// ErrNotFound is returned when deleting an expense that does not exist.
var ErrNotFound = errors.New("expense not found")

// Lister is the read side the balance views depend on.
type Lister interface {
	ListExpenses(ctx context.Context, coupleID string) ([]model.Expense, error)
}

// Service records and removes expenses for one couple.
type Service struct {
	store  Store
	couple model.Couple
	now    func() time.Time
}

// NewService creates an expenses Service.
func NewService(store Store, couple model.Couple) *Service {
	return &Service{store: store, couple: couple, now: time.Now}
}

// AddParams holds parameters for recording a new expense.
type AddParams struct {
	Date        time.Time // defaults to today
	Description string
	Amount      decimal.Decimal
	Category    model.Category // defaults to other
	PaidBy      string
	Shared      bool
}

// Add validates and stores a new expense, returning it with its assigned ID.
// Without a date the expense is recorded on today's local calendar date.
func (s *Service) Add(ctx context.Context, params AddParams) (model.Expense, error) {
	now := s.now()

	date := params.Date
	if date.IsZero() {
		date = now
	}
	y, m, d := date.Date()
	date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	category := params.Category
	if category == "" {
		category = model.CategoryOther
	}

	seq, err := s.NextExpenseSeq(ctx, y, int(m))
	if err != nil {
		return model.Expense{}, err
	}

	e := model.Expense{
		ID:          id.FormatExpenseID(y, int(m), seq),
		Date:        date,
		Description: params.Description,
		Amount:      params.Amount,
		Category:    category,
		PaidBy:      params.PaidBy,
		Shared:      params.Shared,
		CoupleID:    s.couple.ID,
		CreatedAt:   now.UTC().Truncate(time.Second),
	}

	if verrs := ValidateExpense(e, s.couple); len(verrs) > 0 {
		return model.Expense{}, joinValidation(verrs)
	}

	if err := s.store.Insert(ctx, e); err != nil {
		return model.Expense{}, fmt.Errorf("saving expense %s: %w", e.ID, err)
	}

	l := logger.FromContext(ctx)
	l.Debug().
		Str("expense_id", e.ID).
		Str("paid_by", e.PaidBy).
		Bool("shared", e.Shared).
		Msg("expense added")
	return e, nil
}

// Delete removes one of the couple's expenses by ID. Expenses of any other
// couple are reported as not found.
func (s *Service) Delete(ctx context.Context, expenseID string) error {
	year, month, _, err := id.ParseExpenseID(expenseID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	existing, err := s.store.ListMonth(ctx, year, month)
	if err != nil {
		return err
	}
	if !ownedBy(existing, expenseID, s.couple.ID) {
		return fmt.Errorf("%w: %s", ErrNotFound, expenseID)
	}

	ok, err := s.store.Remove(ctx, expenseID)
	if err != nil {
		return fmt.Errorf("deleting expense %s: %w", expenseID, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, expenseID)
	}

	l := logger.FromContext(ctx)
	l.Debug().Str("expense_id", expenseID).Msg("expense deleted")
	return nil
}

func ownedBy(records []model.Expense, expenseID, coupleID string) bool {
	for _, e := range records {
		if e.ID == expenseID {
			return e.CoupleID == coupleID
		}
	}
	return false
}

// ListExpenses returns every stored expense belonging to coupleID.
func (s *Service) ListExpenses(ctx context.Context, coupleID string) ([]model.Expense, error) {
	all, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Expense, 0, len(all))
	for _, e := range all {
		if e.CoupleID == coupleID {
			out = append(out, e)
		}
	}
	return out, nil
}

// NextExpenseSeq returns the next free sequence number for a month.
func (s *Service) NextExpenseSeq(ctx context.Context, year, month int) (int, error) {
	existing, err := s.store.ListMonth(ctx, year, month)
	if err != nil {
		return 0, err
	}

	maxSeq := 0
	for _, e := range existing {
		_, _, seq, err := id.ParseExpenseID(e.ID)
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1, nil
}
