package query

import (
	"sort"
	"time"

	"github.com/alexanderramin/planeasy/internal/domain"
)

// DayKeyLayout formats a group heading, e.g. "Mar 1, 2025".
const DayKeyLayout = "Jan 2, 2006"

// DayGroup is the set of plans falling on one local calendar day.
type DayGroup struct {
	// Key is the display heading for the day.
	Key string
	// Day is local midnight of the calendar day.
	Day time.Time
	// Earliest is the earliest plan instant in the group; groups are ordered by it.
	Earliest time.Time
	Plans    []domain.Plan
}

type dayKey struct {
	year  int
	month time.Month
	day   int
}

// GroupByCalendarDay partitions plans by the calendar day of their instant in
// loc. Groups are ordered by the earliest instant they contain; plans inside a
// group keep input order, so sort first for chronological rows.
func GroupByCalendarDay(plans []domain.Plan, loc *time.Location) []DayGroup {
	if loc == nil {
		loc = time.Local
	}

	index := make(map[dayKey]int)
	groups := make([]DayGroup, 0)
	for _, p := range plans {
		local := p.Date.In(loc)
		y, m, d := local.Date()
		k := dayKey{y, m, d}

		i, ok := index[k]
		if !ok {
			day := time.Date(y, m, d, 0, 0, 0, 0, loc)
			groups = append(groups, DayGroup{
				Key:      day.Format(DayKeyLayout),
				Day:      day,
				Earliest: p.Date,
			})
			i = len(groups) - 1
			index[k] = i
		}

		g := &groups[i]
		if p.Date.Before(g.Earliest) {
			g.Earliest = p.Date
		}
		g.Plans = append(g.Plans, p)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Earliest.Before(groups[j].Earliest)
	})
	return groups
}
