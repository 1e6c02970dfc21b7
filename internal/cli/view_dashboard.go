package cli

import (
	"strings"

	"github.com/alexanderramin/planeasy/internal/cli/formatter"
	"github.com/alexanderramin/planeasy/internal/domain"
	"github.com/alexanderramin/planeasy/internal/query"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// dashboardLoadedMsg signals that dashboard data has been loaded.
type dashboardLoadedMsg struct {
	data query.Dashboard
	err  error
}

// dashboardView is the home screen of the TUI: today's open plans on the
// left and overall progress on the right.
type dashboardView struct {
	state   *SharedState
	data    *query.Dashboard
	loading bool
	err     error
	cursor  int
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{
		state:   state,
		loading: true,
	}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Today" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{keyToggle, keyAdd, keyList, keyStats, keyRefresh, keyQuit}
}

func (v *dashboardView) Init() tea.Cmd {
	return v.loadData()
}

func (v *dashboardView) loadData() tea.Cmd {
	state := v.state
	return func() tea.Msg {
		d, err := state.App.Plans.Dashboard(state.Context(), state.Now())
		return dashboardLoadedMsg{data: d, err: err}
	}
}

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.data = &msg.data
		if v.cursor >= len(v.data.Today) {
			v.cursor = max(0, len(v.data.Today)-1)
		}
		return v, nil

	case refreshViewMsg:
		return v, v.loadData()

	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}
	return v, nil
}

func (v *dashboardView) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keyUp):
		v.cursor = max(v.cursor-1, 0)
	case key.Matches(msg, keyDown):
		if v.data != nil && v.cursor < len(v.data.Today)-1 {
			v.cursor++
		}
	case key.Matches(msg, keyToggle):
		if p, ok := v.selected(); ok {
			return execTogglePlan(v.state, p.ID)
		}
	case key.Matches(msg, keyDetail):
		if p, ok := v.selected(); ok {
			return outputCmd(formatter.FormatPlanDetail(p, v.state.Now(), v.state.Location()))
		}
	case key.Matches(msg, keyAdd):
		return startAddPlanWizard(v.state)
	case key.Matches(msg, keyList):
		return pushView(newPlanListView(v.state))
	case key.Matches(msg, keyStats):
		return pushView(newStatsView(v.state))
	case key.Matches(msg, keyRefresh):
		v.loading = true
		return v.loadData()
	}
	return nil
}

func (v *dashboardView) selected() (p domain.Plan, ok bool) {
	if v.data == nil || v.cursor >= len(v.data.Today) {
		return p, false
	}
	return v.data.Today[v.cursor], true
}

// dashLeftPaneWidth fits a plan line: mark, clock, title, badge, due label.
const dashLeftPaneWidth = 78

func (v *dashboardView) View() string {
	if v.loading && v.data == nil {
		return "\n  " + formatter.Dim("Loading...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+FriendlyError(v.err).Error())
	}
	if v.data == nil {
		return ""
	}

	left := v.renderToday()
	right := formatter.StyleHeader.Render("PROGRESS") + "\n\n" + formatter.FormatDashboardSummary(*v.data)

	rightWidth := v.state.Width - dashLeftPaneWidth - 3
	if rightWidth < 30 {
		return "\n" + left + "\n" + right
	}

	leftCol := lipgloss.NewStyle().Width(dashLeftPaneWidth).Render(left)
	divider := formatter.Dim("│")
	rightCol := lipgloss.NewStyle().Width(rightWidth).Render(right)

	return "\n" + lipgloss.JoinHorizontal(lipgloss.Top, leftCol, " "+divider+" ", rightCol)
}

func (v *dashboardView) renderToday() string {
	d := v.data
	loc := v.state.Location()

	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render("TODAY") + "  " + formatter.Dim(formatter.FormatDay(d.Date, loc)) + "\n\n")

	if len(d.Today) == 0 {
		b.WriteString("  " + formatter.Dim("Nothing left for today. Press 'a' to add a plan."))
		b.WriteString("\n")
		return b.String()
	}

	for i, p := range d.Today {
		cursor := "  "
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
		}
		b.WriteString(cursor + formatter.FormatPlanLine(p, d.Date, loc) + "\n")
	}
	return b.String()
}
