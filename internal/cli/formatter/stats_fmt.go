package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/planeasy/internal/domain"
	"github.com/alexanderramin/planeasy/internal/query"
)

const statsBarWidth = 24

// FormatStats renders totals, the completion bar and the per-category
// breakdown.
func FormatStats(s query.Stats) string {
	var b strings.Builder
	b.WriteString(Header("Progress"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s %s   %s %s   %s %s\n",
		Dim("Total"), Bold(strconv.Itoa(s.Total)),
		Dim("Done"), StyleGreen.Render(strconv.Itoa(s.Completed)),
		Dim("Open"), StyleYellow.Render(strconv.Itoa(s.InProgress))))
	b.WriteString("  ")
	b.WriteString(RenderProgress(s.CompletionPercentage(), statsBarWidth))
	b.WriteString("\n")

	breakdown := query.CategoryBreakdown(s)
	if len(breakdown) == 0 {
		b.WriteString("\n")
		b.WriteString(Dim("  No plans yet."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(Header("By category"))
	b.WriteString("\n")
	rows := make([][]string, 0, len(breakdown))
	for _, c := range breakdown {
		pct := 0
		if s.Total > 0 {
			pct = c.Count * 100 / s.Total
		}
		rows = append(rows, []string{
			"  " + CategoryBadge(c.Category),
			strconv.Itoa(c.Count),
			RenderCompactBar(pct, statsBarWidth/2),
		})
	}
	b.WriteString(renderRows(rows))
	return b.String()
}

// FormatCategories renders the known categories followed by any other
// category found in the collection, with plan counts.
func FormatCategories(s query.Stats) string {
	names := append([]string{}, domain.KnownCategories...)
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	for _, c := range query.CategoryBreakdown(s) {
		if !seen[c.Category] {
			names = append(names, c.Category)
			seen[c.Category] = true
		}
	}

	rows := make([][]string, 0, len(names))
	for _, n := range names {
		rows = append(rows, []string{CategoryBadge(n), strconv.Itoa(s.PerCategory[n])})
	}
	return RenderTable([]string{"CATEGORY", "PLANS"}, rows)
}

// FormatReminders renders queued reminders as a table in loc.
func FormatReminders(reminders []*domain.Reminder, loc *time.Location) string {
	if len(reminders) == 0 {
		return Dim("No pending reminders.") + "\n"
	}
	rows := make([][]string, 0, len(reminders))
	for _, r := range reminders {
		rows = append(rows, []string{
			FormatDay(r.FireAt, loc) + " " + FormatClock(r.FireAt, loc),
			r.Body,
			TruncID(r.ID),
		})
	}
	return RenderTable([]string{"FIRES", "REMINDER", "ID"}, rows)
}

// renderRows aligns rows without a header.
func renderRows(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	widths := columnWidths(make([]string, len(rows[0])), rows)
	var b strings.Builder
	for _, r := range rows {
		writeRow(&b, r, widths)
	}
	return b.String()
}
