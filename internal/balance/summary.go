package balance

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/juntos-app/juntos/internal/model"
)

// Summary aggregates spending over a record set regardless of who paid.
type Summary struct {
	Total      decimal.Decimal
	Count      int
	ByCategory map[model.Category]decimal.Decimal
}

// Summarize totals records overall and per category.
func Summarize(records []model.Expense) Summary {
	s := Summary{
		Total:      decimal.Zero,
		ByCategory: make(map[model.Category]decimal.Decimal),
	}
	for _, rec := range records {
		s.Total = s.Total.Add(rec.Amount)
		s.Count++
		s.ByCategory[rec.Category] = s.ByCategory[rec.Category].Add(rec.Amount)
	}
	return s
}

// Average returns Total / Count, or zero for an empty summary. The result is
// not rounded.
func (s Summary) Average() decimal.Decimal {
	if s.Count == 0 {
		return decimal.Zero
	}
	return s.Total.Div(decimal.NewFromInt(int64(s.Count)))
}

// Categories returns the categories present, largest total first, ties by name.
func (s Summary) Categories() []model.Category {
	cats := make([]model.Category, 0, len(s.ByCategory))
	for c := range s.ByCategory {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool {
		ti, tj := s.ByCategory[cats[i]], s.ByCategory[cats[j]]
		if !ti.Equal(tj) {
			return ti.GreaterThan(tj)
		}
		return cats[i] < cats[j]
	})
	return cats
}
