// Package balance computes how much each member of a couple has paid, what
// their fair share is, and who owes whom.
package balance

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/juntos-app/juntos/internal/model"
)

// Epsilon is the smallest balance magnitude not considered settled.
var Epsilon = decimal.New(1, -2)

var half = decimal.New(5, -1)

// Status classifies a balance from the perspective member's point of view.
type Status string

const (
	StatusSettled Status = "settled"
	StatusOwed    Status = "owed" // the other member owes the perspective member
	StatusOwes    Status = "owes" // the perspective member owes the other member
)

// Result is the outcome of Compute. Maps are keyed by member ID and always
// hold both members.
type Result struct {
	MemberA     string
	MemberB     string
	Perspective string

	TotalPaid map[string]decimal.Decimal
	FairShare map[string]decimal.Decimal
	Balance   decimal.Decimal // TotalPaid[Perspective] - FairShare[Perspective]
	Status    Status

	SharedTotal   decimal.Decimal
	PersonalTotal map[string]decimal.Decimal
	Count         int
	SharedCount   int

	Suggestion string
}

// Other returns the member that is not the perspective.
func (r *Result) Other() string {
	if r.Perspective == r.MemberA {
		return r.MemberB
	}
	return r.MemberA
}

// Magnitude returns |Balance|.
func (r *Result) Magnitude() decimal.Decimal {
	return r.Balance.Abs()
}

// SuggestionFor renders the suggestion with display names in place of member
// IDs and the given currency symbol. Members missing from names keep their ID.
func (r *Result) SuggestionFor(names map[string]string, symbol string) string {
	name := func(id string) string {
		if n, ok := names[id]; ok && n != "" {
			return n
		}
		return id
	}
	return suggest(r.Status, name(r.Perspective), name(r.Other()), symbol, r.Magnitude())
}

// Compute aggregates records into a Result for perspective. Input is checked
// in full before any arithmetic; on error no Result is returned and the error
// is an *ArgumentError matching ErrInvalidArgument.
func Compute(records []model.Expense, memberA, memberB, perspective string) (*Result, error) {
	if verrs := validate(records, memberA, memberB, perspective); len(verrs) > 0 {
		return nil, &ArgumentError{Violations: verrs}
	}

	r := &Result{
		MemberA:     memberA,
		MemberB:     memberB,
		Perspective: perspective,
		TotalPaid: map[string]decimal.Decimal{
			memberA: decimal.Zero,
			memberB: decimal.Zero,
		},
		FairShare: map[string]decimal.Decimal{
			memberA: decimal.Zero,
			memberB: decimal.Zero,
		},
		PersonalTotal: map[string]decimal.Decimal{
			memberA: decimal.Zero,
			memberB: decimal.Zero,
		},
		SharedTotal: decimal.Zero,
	}

	for _, rec := range records {
		r.Count++
		r.TotalPaid[rec.PaidBy] = r.TotalPaid[rec.PaidBy].Add(rec.Amount)

		if rec.Shared {
			// Exact: multiplying by 0.5 never needs rounding.
			share := rec.Amount.Mul(half)
			r.FairShare[memberA] = r.FairShare[memberA].Add(share)
			r.FairShare[memberB] = r.FairShare[memberB].Add(share)
			r.SharedTotal = r.SharedTotal.Add(rec.Amount)
			r.SharedCount++
			continue
		}

		r.FairShare[rec.PaidBy] = r.FairShare[rec.PaidBy].Add(rec.Amount)
		r.PersonalTotal[rec.PaidBy] = r.PersonalTotal[rec.PaidBy].Add(rec.Amount)
	}

	r.Balance = r.TotalPaid[perspective].Sub(r.FairShare[perspective])
	r.Status = Classify(r.Balance)
	r.Suggestion = suggest(r.Status, perspective, r.Other(), "$", r.Magnitude())
	return r, nil
}

// Classify buckets a signed balance. Anything with |b| < Epsilon is settled.
func Classify(b decimal.Decimal) Status {
	switch {
	case b.Abs().LessThan(Epsilon):
		return StatusSettled
	case b.IsPositive():
		return StatusOwed
	default:
		return StatusOwes
	}
}

func suggest(s Status, perspective, other, symbol string, amount decimal.Decimal) string {
	switch s {
	case StatusOwed:
		return fmt.Sprintf("%s owes %s %s%s", other, perspective, symbol, amount.StringFixed(2))
	case StatusOwes:
		return fmt.Sprintf("%s owes %s %s%s", perspective, other, symbol, amount.StringFixed(2))
	default:
		return "All square"
	}
}

func validate(records []model.Expense, memberA, memberB, perspective string) []Violation {
	var verrs []Violation

	if memberA == "" || memberB == "" {
		verrs = append(verrs, Violation{Description: "couple must have two members"})
	} else if memberA == memberB {
		verrs = append(verrs, Violation{Description: fmt.Sprintf("members must be distinct, both are %q", memberA)})
	}

	if perspective == "" || (perspective != memberA && perspective != memberB) {
		verrs = append(verrs, Violation{Description: fmt.Sprintf("perspective %q is not a member of the couple", perspective)})
	}

	for _, rec := range records {
		if !rec.Amount.IsPositive() {
			verrs = append(verrs, Violation{
				ExpenseID:   rec.ID,
				Description: fmt.Sprintf("amount %s must be positive", rec.Amount),
			})
		}
		if rec.PaidBy == "" || (rec.PaidBy != memberA && rec.PaidBy != memberB) {
			verrs = append(verrs, Violation{
				ExpenseID:   rec.ID,
				Description: fmt.Sprintf("payer %q is not a member of the couple", rec.PaidBy),
			})
		}
	}

	return verrs
}
