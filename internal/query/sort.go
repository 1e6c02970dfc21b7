package query

import (
	"sort"

	"github.com/alexanderramin/planeasy/internal/domain"
)

// SortChronological returns the plans ordered by scheduled instant, earliest
// first. The sort is stable: plans sharing an instant keep their input order.
func SortChronological(plans []domain.Plan) []domain.Plan {
	out := make([]domain.Plan, len(plans))
	copy(out, plans)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
