package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/planeasy/internal/cli/formatter"
	"github.com/alexanderramin/planeasy/internal/domain"
	"github.com/alexanderramin/planeasy/internal/query"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// planListLoadedMsg signals that the listing for category has been loaded.
type planListLoadedMsg struct {
	category string
	listing  query.Listing
	err      error
}

// planListView shows plans grouped by calendar day under the shared
// category filter. The cursor moves over plans only, skipping headings.
type planListView struct {
	state   *SharedState
	listing *query.Listing
	plans   []domain.Plan // listing plans flattened in display order
	cursor  int
	loading bool
	err     error
}

func newPlanListView(state *SharedState) *planListView {
	return &planListView{
		state:   state,
		loading: true,
	}
}

func (v *planListView) ID() ViewID { return ViewPlanList }
func (v *planListView) Title() string {
	return "Plans"
}

func (v *planListView) ShortHelp() []key.Binding {
	return []key.Binding{keyNextCat, keyToggle, keyDetail, keyAdd, keyEdit, keyDelete, keyRefresh}
}

func (v *planListView) Init() tea.Cmd {
	return v.loadPlans()
}

func (v *planListView) loadPlans() tea.Cmd {
	state := v.state
	category := domain.CategoryOr(state.Category, domain.CategoryAll)
	return func() tea.Msg {
		l, err := state.App.Plans.Listing(state.Context(), category)
		return planListLoadedMsg{category: category, listing: l, err: err}
	}
}

func (v *planListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case planListLoadedMsg:
		// A late load for a category we already tabbed away from is stale.
		if msg.category != domain.CategoryOr(v.state.Category, domain.CategoryAll) {
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.listing = &msg.listing
		v.plans = flattenGroups(msg.listing.Groups)
		if v.cursor >= len(v.plans) {
			v.cursor = max(0, len(v.plans)-1)
		}
		return v, nil

	case refreshViewMsg:
		return v, v.loadPlans()

	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}
	return v, nil
}

func (v *planListView) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, keyAdd) {
		return startAddPlanWizard(v.state)
	}
	if key.Matches(msg, keyRefresh) {
		v.loading = true
		return v.loadPlans()
	}

	switch {
	case key.Matches(msg, keyUp):
		v.cursor = max(v.cursor-1, 0)
		return nil
	case key.Matches(msg, keyDown):
		v.cursor = min(v.cursor+1, max(len(v.plans)-1, 0))
		return nil
	case key.Matches(msg, keyNextCat):
		return v.cycleCategory(1)
	case key.Matches(msg, keyPrevCat):
		return v.cycleCategory(-1)
	}

	p, ok := v.selected()
	if !ok {
		return nil
	}
	switch {
	case key.Matches(msg, keyToggle):
		return execTogglePlan(v.state, p.ID)
	case key.Matches(msg, keyDetail):
		return outputCmd(formatter.FormatPlanDetail(p, v.state.Now(), v.state.Location()))
	case key.Matches(msg, keyEdit):
		return startEditPlanWizard(v.state, p)
	case key.Matches(msg, keyDelete):
		return execDeletePlan(v.state, p)
	}
	return nil
}

// cycleCategory moves the shared filter step places along the category bar
// and reloads. The cursor returns to the first plan.
func (v *planListView) cycleCategory(step int) tea.Cmd {
	if v.listing == nil || len(v.listing.Categories) == 0 {
		return nil
	}
	cats := v.listing.Categories
	idx := -1
	for i, c := range cats {
		if c == v.listing.Category {
			idx = i
			break
		}
	}
	next := (idx + step + len(cats)) % len(cats)
	if idx < 0 && step > 0 {
		next = 0
	}
	v.state.Category = cats[next]
	v.cursor = 0
	v.loading = true
	return v.loadPlans()
}

func (v *planListView) selected() (p domain.Plan, ok bool) {
	if v.cursor >= len(v.plans) {
		return p, false
	}
	return v.plans[v.cursor], true
}

func flattenGroups(groups []query.DayGroup) []domain.Plan {
	var out []domain.Plan
	for _, g := range groups {
		out = append(out, g.Plans...)
	}
	return out
}

func (v *planListView) View() string {
	if v.loading && v.listing == nil {
		return "\n  " + formatter.Dim("Loading plans...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+FriendlyError(v.err).Error())
	}
	if v.listing == nil {
		return ""
	}

	l := v.listing
	bar := "  " + formatter.FormatCategoryBar(l.Categories, l.Category)

	if l.Count == 0 {
		empty := "No plans yet. Press 'a' to add one."
		if l.Category != domain.CategoryAll {
			empty = "No plans in " + l.Category + ". Press tab for another category."
		}
		return "\n" + bar + "\n\n  " + formatter.Dim(empty)
	}

	lines, cursorLine := v.renderLines()
	lines = scrollWindow(lines, cursorLine, v.state.ContentHeight()-4)

	return "\n" + bar + "\n\n" + strings.Join(lines, "\n") + "\n\n  " +
		formatter.Dim(fmt.Sprintf("%d plan(s)", l.Count))
}

// renderLines returns one line per heading and plan, and the index of the
// line the cursor is on.
func (v *planListView) renderLines() ([]string, int) {
	now := v.state.Now()
	loc := v.state.Location()

	var lines []string
	cursorLine := 0
	i := 0
	for gi, g := range v.listing.Groups {
		if gi > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, "  "+formatter.FormatGroupHeading(g, now, loc))
		for _, p := range g.Plans {
			cursor := "    "
			if i == v.cursor {
				cursor = "  " + formatter.StyleGreen.Render("▸ ")
				cursorLine = len(lines)
			}
			lines = append(lines, cursor+formatter.FormatPlanLine(p, now, loc))
			i++
		}
	}
	return lines, cursorLine
}

// scrollWindow returns at most height lines of lines, keeping focus visible.
func scrollWindow(lines []string, focus, height int) []string {
	if height < 1 || len(lines) <= height {
		return lines
	}
	start := focus - height/2
	if start < 0 {
		start = 0
	}
	if start+height > len(lines) {
		start = len(lines) - height
	}
	return lines[start : start+height]
}
