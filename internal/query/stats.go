package query

import (
	"math"
	"sort"

	"github.com/alexanderramin/planeasy/internal/domain"
)

// Stats aggregates completion across a collection.
type Stats struct {
	Total       int
	Completed   int
	InProgress  int
	PerCategory map[string]int
}

// CompletionPercentage returns completed/total as a rounded percentage,
// or 0 for an empty collection.
func (s Stats) CompletionPercentage() int {
	if s.Total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(s.Completed) / float64(s.Total)))
}

// ComputeStats counts plans overall, by completion, and by category.
// Plans without a category are counted as "Uncategorized".
func ComputeStats(plans []domain.Plan) Stats {
	s := Stats{PerCategory: make(map[string]int)}
	for _, p := range plans {
		s.Total++
		if p.Completed {
			s.Completed++
		}
		s.PerCategory[p.StatsCategory()]++
	}
	s.InProgress = s.Total - s.Completed
	return s
}

// CategoryCount is one row of a category breakdown.
type CategoryCount struct {
	Category string
	Count    int
}

// CategoryBreakdown orders the per-category counts by count descending, then
// by name.
func CategoryBreakdown(s Stats) []CategoryCount {
	out := make([]CategoryCount, 0, len(s.PerCategory))
	for c, n := range s.PerCategory {
		out = append(out, CategoryCount{Category: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out
}
