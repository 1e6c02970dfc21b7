package query

import (
	"time"

	"github.com/alexanderramin/planeasy/internal/domain"
)

// Dashboard is the home-screen projection: what is still open today.
type Dashboard struct {
	Date         time.Time
	Today        []domain.Plan
	PastDueCount int
	Stats        Stats
}

// BuildDashboard derives the dashboard at ref.
func BuildDashboard(plans []domain.Plan, ref time.Time) Dashboard {
	return Dashboard{
		Date:         ref,
		Today:        SortChronological(FilterToday(plans, ref)),
		PastDueCount: len(PastDue(plans, ref)),
		Stats:        ComputeStats(plans),
	}
}

// Listing is the plan-list projection: day groups under a category filter.
type Listing struct {
	Category   string
	Categories []string
	Groups     []DayGroup
	Count      int
}

// BuildListing sorts, filters by category, and groups by calendar day in loc.
// An empty category means "All". Categories are taken from the unfiltered
// collection so the filter bar stays stable.
func BuildListing(plans []domain.Plan, category string, loc *time.Location) Listing {
	category = domain.CategoryOr(category, domain.CategoryAll)
	filtered := FilterByCategory(SortChronological(plans), category)
	return Listing{
		Category:   category,
		Categories: UniqueCategories(plans),
		Groups:     GroupByCalendarDay(filtered, loc),
		Count:      len(filtered),
	}
}
