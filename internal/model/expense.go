package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category tags an expense for reporting. It has no effect on balances.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryEntertainment Category = "entertainment"
	CategoryBills         Category = "bills"
	CategoryTransport     Category = "transport"
	CategoryHealth        Category = "health"
	CategoryShopping      Category = "shopping"
	CategoryHome          Category = "home"
	CategoryOther         Category = "other"
)

var categoryLabels = map[Category]string{
	CategoryFood:          "Alimentación",
	CategoryEntertainment: "Ocio",
	CategoryBills:         "Facturas",
	CategoryTransport:     "Transporte",
	CategoryHealth:        "Salud",
	CategoryShopping:      "Compras",
	CategoryHome:          "Hogar",
	CategoryOther:         "Otros",
}

// Categories returns every known category in display order.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryEntertainment,
		CategoryBills,
		CategoryTransport,
		CategoryHealth,
		CategoryShopping,
		CategoryHome,
		CategoryOther,
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the display label, or the raw value for unknown categories.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Expense is one row in expenses.csv. Records are created and deleted,
// never edited in place.
type Expense struct {
	ID          string // "YYYY-MM-NNN"
	Date        time.Time
	Description string
	Amount      decimal.Decimal // always > 0
	Category    Category
	PaidBy      string // member ID
	Shared      bool   // false = personal expense of PaidBy
	CoupleID    string
	CreatedAt   time.Time
}
