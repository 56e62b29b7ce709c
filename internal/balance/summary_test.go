package balance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/juntos-app/juntos/internal/model"
)

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.True(t, s.Total.IsZero())
	assert.Zero(t, s.Count)
	assert.True(t, s.Average().IsZero())
	assert.Empty(t, s.Categories())
}

func TestSummarize(t *testing.T) {
	records := []model.Expense{
		shared("1", "20.00", memberA),
		personal("2", "10.00", memberB),
		shared("3", "5.50", memberB),
	}
	records[1].Category = model.CategoryHome
	records[2].Category = model.CategoryTransport

	s := Summarize(records)
	assertDec(t, "35.50", s.Total)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, "11.83", s.Average().StringFixed(2))

	assert.Equal(t, []model.Category{
		model.CategoryFood,
		model.CategoryHome,
		model.CategoryTransport,
	}, s.Categories())
	assertDec(t, "10", s.ByCategory[model.CategoryHome])
}

func TestSummarize_CategoryTiesByName(t *testing.T) {
	records := []model.Expense{
		shared("1", "10.00", memberA),
		shared("2", "10.00", memberA),
	}
	records[0].Category = model.CategoryTransport
	records[1].Category = model.CategoryBills

	s := Summarize(records)
	assert.Equal(t, []model.Category{model.CategoryBills, model.CategoryTransport}, s.Categories())
}
