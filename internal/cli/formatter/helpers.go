package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Display layouts for plan instants.
const (
	DayLayout   = "Mon, Jan 2 2006"
	ClockLayout = "15:04"
)

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorDim).
	Padding(1, 2)

// RenderBox frames content, with title upper-cased on the first line.
func RenderBox(title, content string) string {
	return titledBox(strings.ToUpper(title), content)
}

// titledBox frames content under title exactly as given. User text such as a
// plan title goes through here so its case is kept.
func titledBox(title, content string) string {
	if title == "" {
		return boxStyle.Render(content)
	}
	return boxStyle.Render(StyleHeader.Render(title) + "\n\n" + content)
}

// RelativeDay describes the calendar-day distance from now to t, both taken
// in loc: "Today", "Tomorrow", "Yesterday", "In 3d", "2w ago" and so on.
func RelativeDay(t, now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	days := calendarDays(now.In(loc), t.In(loc))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// calendarDays counts midnights between a and b. Both must share a location.
func calendarDays(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 12, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 12, 0, 0, 0, time.UTC)
	return int(math.Round(db.Sub(da).Hours() / 24))
}

// DueLabel renders RelativeDay with urgency coloring. Open plans whose
// instant has passed are red; completed plans are always dim.
func DueLabel(t, now time.Time, loc *time.Location, completed bool) string {
	text := RelativeDay(t, now, loc)
	switch {
	case completed:
		return StyleDim.Render(text)
	case t.Before(now):
		return StyleRed.Render(text)
	case t.Sub(now) <= 48*time.Hour:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// FormatClock renders the local time-of-day of t.
func FormatClock(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(ClockLayout)
}

// FormatDay renders the local calendar day of t.
func FormatDay(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DayLayout)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	return StyleDim.Render(ShortID(id))
}

// ShortID returns the first 8 characters of an ID.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Truncate shortens s to at most n visible cells, marking the cut with "…".
func Truncate(s string, n int) string {
	if n <= 0 || lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > n {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
