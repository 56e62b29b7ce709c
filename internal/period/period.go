// Package period selects expenses by calendar period relative to a
// reference instant.
package period

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/juntos-app/juntos/internal/model"
)

// Period names a calendar window.
type Period string

const (
	All       Period = "all"
	ThisWeek  Period = "this-week"
	ThisMonth Period = "this-month"
	LastMonth Period = "last-month"
	ThisYear  Period = "this-year"
)

// Periods returns every supported period.
func Periods() []Period {
	return []Period{All, ThisWeek, ThisMonth, LastMonth, ThisYear}
}

// Parse accepts a period name, case-insensitively.
func Parse(s string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Periods() {
		if p == known {
			return p, nil
		}
	}
	names := make([]string, 0, len(Periods()))
	for _, known := range Periods() {
		names = append(names, string(known))
	}
	return "", fmt.Errorf("unknown period %q (want one of %s)", s, strings.Join(names, ", "))
}

// Range returns the half-open window [start, end) for p around now, in now's
// location. Weeks start on Monday. All returns zero times.
func (p Period) Range(now time.Time) (start, end time.Time) {
	loc := now.Location()
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)

	switch p {
	case ThisWeek:
		offset := (int(today.Weekday()) + 6) % 7 // days since Monday
		start = today.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7)
	case ThisMonth:
		start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0)
	case LastMonth:
		end = time.Date(y, m, 1, 0, 0, 0, 0, loc)
		return end.AddDate(0, -1, 0), end
	case ThisYear:
		start = time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(1, 0, 0)
	}
	return time.Time{}, time.Time{}
}

// Contains reports whether t falls inside p around now.
func (p Period) Contains(t, now time.Time) bool {
	if p == All {
		return true
	}
	start, end := p.Range(now)
	// Expense dates are calendar days; compare them in now's location.
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return !day.Before(start) && day.Before(end)
}

// Filter returns the records inside p, newest first (ties by ID, descending).
// records is not modified.
func Filter(records []model.Expense, p Period, now time.Time) []model.Expense {
	out := make([]model.Expense, 0, len(records))
	for _, rec := range records {
		if p.Contains(rec.Date, now) {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out
}
