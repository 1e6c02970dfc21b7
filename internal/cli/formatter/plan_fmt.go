package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/planeasy/internal/domain"
	"github.com/alexanderramin/planeasy/internal/query"
	"github.com/charmbracelet/lipgloss"
)

const titleWidth = 32

// FormatPlanLine renders a single plan as one row: mark, time, title,
// category and due label.
func FormatPlanLine(p domain.Plan, now time.Time, loc *time.Location) string {
	plain := Truncate(p.Title, titleWidth)
	title := StyleFg.Render(plain)
	if p.Completed {
		title = StyleDim.Strikethrough(true).Render(plain)
	}
	pad := strings.Repeat(" ", max(titleWidth-lipgloss.Width(plain), 0))

	return fmt.Sprintf("%s %s  %s%s  %s  %s  %s",
		CompletionMark(p.Completed),
		Dim(FormatClock(p.Date, loc)),
		title, pad,
		CategoryBadge(p.Category),
		DueLabel(p.Date, now, loc, p.Completed),
		TruncID(p.ID),
	)
}

// FormatDayGroups renders each day group under its heading.
func FormatDayGroups(groups []query.DayGroup, now time.Time, loc *time.Location) string {
	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatGroupHeading(g, now, loc))
		b.WriteString("\n")
		for _, p := range g.Plans {
			b.WriteString("  ")
			b.WriteString(FormatPlanLine(p, now, loc))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// FormatGroupHeading renders a day group title with its relative day and
// open count.
func FormatGroupHeading(g query.DayGroup, now time.Time, loc *time.Location) string {
	open := 0
	for _, p := range g.Plans {
		if !p.Completed {
			open++
		}
	}
	heading := StyleHeader.Render(g.Key) + " " + Dim("("+RelativeDay(g.Day, now, loc)+")")
	if open == 0 {
		return heading + " " + StyleGreen.Render("all done")
	}
	return heading + " " + Dim(fmt.Sprintf("%d open", open))
}

// FormatListing renders the plan list with its category filter bar.
func FormatListing(l query.Listing, now time.Time, loc *time.Location) string {
	var b strings.Builder
	b.WriteString(FormatCategoryBar(l.Categories, l.Category))
	b.WriteString("\n\n")
	if l.Count == 0 {
		if l.Category == domain.CategoryAll {
			b.WriteString(Dim("No plans yet. Add one with 'planeasy add --title ...'."))
		} else {
			b.WriteString(Dim(fmt.Sprintf("No plans in %s.", l.Category)))
		}
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(FormatDayGroups(l.Groups, now, loc))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%d plan(s)", l.Count)))
	b.WriteString("\n")
	return b.String()
}

// FormatCategoryBar renders the available category filters with the active
// one highlighted.
func FormatCategoryBar(categories []string, active string) string {
	parts := make([]string, 0, len(categories))
	for _, c := range categories {
		label := c
		if label == "" {
			label = domain.CategoryUncategorized
		}
		if c == active {
			parts = append(parts, StyleHeader.Render("["+label+"]"))
		} else {
			parts = append(parts, Dim(label))
		}
	}
	return strings.Join(parts, "  ")
}

// FormatPlanDetail renders every field of a plan in a box.
func FormatPlanDetail(p domain.Plan, now time.Time, loc *time.Location) string {
	status := StyleYellow.Render("○ Open")
	if p.Completed {
		status = StyleGreen.Render("✓ Done")
	} else if query.IsPastDue(p, now) {
		status = StyleRed.Render("● Past due")
	}

	rows := [][]string{
		{"ID", p.ID},
		{"Date", FormatDay(p.Date, loc) + " " + FormatClock(p.Date, loc) + "  " + DueLabel(p.Date, now, loc, p.Completed)},
		{"Category", CategoryBadge(p.Category)},
		{"Status", status},
	}
	if p.Note != "" {
		rows = append(rows, []string{"Note", p.Note})
	}
	if !p.CreatedAt.IsZero() {
		rows = append(rows, []string{"Created", FormatDay(p.CreatedAt, loc) + " " + FormatClock(p.CreatedAt, loc)})
	}

	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("%s %s", Dim(fmt.Sprintf("%-9s", r[0])), r[1]))
	}
	return titledBox(p.Title, b.String())
}

// FormatDashboard renders today's open plans, the past-due count and the
// overall completion bar.
func FormatDashboard(d query.Dashboard, loc *time.Location) string {
	var b strings.Builder
	b.WriteString(Header("Today · " + FormatDay(d.Date, loc)))
	b.WriteString("\n")

	if len(d.Today) == 0 {
		b.WriteString(Dim("  Nothing left for today."))
		b.WriteString("\n")
	} else {
		for _, p := range d.Today {
			b.WriteString("  ")
			b.WriteString(FormatPlanLine(p, d.Date, loc))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(FormatDashboardSummary(d))
	return b.String()
}

// FormatDashboardSummary renders the past-due count and overall progress
// shown under today's plans.
func FormatDashboardSummary(d query.Dashboard) string {
	var b strings.Builder
	if d.PastDueCount > 0 {
		b.WriteString(StyleRed.Render(fmt.Sprintf("  %d past due", d.PastDueCount)))
	} else {
		b.WriteString(StyleGreen.Render("  Nothing past due"))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s  %s\n",
		RenderProgress(d.Stats.CompletionPercentage(), 20),
		Dim(fmt.Sprintf("%d of %d done", d.Stats.Completed, d.Stats.Total))))
	return b.String()
}
