// Package query derives read-only views of a plan collection: filters,
// chronological ordering, day grouping and completion statistics.
//
// Every function treats its input as a snapshot. Results are freshly
// allocated, so callers may reorder or modify them freely.
package query

import (
	"time"

	"github.com/alexanderramin/planeasy/internal/domain"
)

// SameCalendarDay reports whether a and b share a year, month and day in loc.
func SameCalendarDay(a, b time.Time, loc *time.Location) bool {
	y1, m1, d1 := a.In(loc).Date()
	y2, m2, d2 := b.In(loc).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// FilterToday returns the open plans scheduled on ref's calendar day, in
// ref's location. Input order is preserved.
func FilterToday(plans []domain.Plan, ref time.Time) []domain.Plan {
	out := make([]domain.Plan, 0)
	for _, p := range plans {
		if p.Completed {
			continue
		}
		if SameCalendarDay(p.Date, ref, ref.Location()) {
			out = append(out, p)
		}
	}
	return out
}

// FilterByCategory keeps plans whose category matches exactly.
// The "All" sentinel keeps everything.
func FilterByCategory(plans []domain.Plan, category string) []domain.Plan {
	out := make([]domain.Plan, 0, len(plans))
	for _, p := range plans {
		if category == domain.CategoryAll || p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// IsPastDue reports whether the plan's instant has elapsed at ref and it is
// still open.
func IsPastDue(p domain.Plan, ref time.Time) bool {
	return p.Date.Before(ref) && !p.Completed
}

// PastDue returns the plans that are past due at ref.
func PastDue(plans []domain.Plan, ref time.Time) []domain.Plan {
	out := make([]domain.Plan, 0)
	for _, p := range plans {
		if IsPastDue(p, ref) {
			out = append(out, p)
		}
	}
	return out
}

// UniqueCategories returns the "All" sentinel followed by each distinct
// category in first-seen order.
func UniqueCategories(plans []domain.Plan) []string {
	seen := make(map[string]bool)
	out := []string{domain.CategoryAll}
	for _, p := range plans {
		if seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}
