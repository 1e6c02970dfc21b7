package cli

import (
	"strings"

	"github.com/alexanderramin/planeasy/internal/cli/formatter"
	"github.com/alexanderramin/planeasy/internal/query"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// statsLoadedMsg signals that statistics have been loaded.
type statsLoadedMsg struct {
	stats query.Stats
	err   error
}

// statsView shows completion progress and the per-category breakdown.
type statsView struct {
	state   *SharedState
	stats   *query.Stats
	loading bool
	err     error
}

func newStatsView(state *SharedState) *statsView {
	return &statsView{state: state, loading: true}
}

func (v *statsView) ID() ViewID    { return ViewStats }
func (v *statsView) Title() string { return "Stats" }

func (v *statsView) ShortHelp() []key.Binding {
	return []key.Binding{keyList, keyRefresh}
}

func (v *statsView) Init() tea.Cmd {
	return v.loadStats()
}

func (v *statsView) loadStats() tea.Cmd {
	state := v.state
	return func() tea.Msg {
		s, err := state.App.Plans.Stats(state.Context())
		return statsLoadedMsg{stats: s, err: err}
	}
}

func (v *statsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.stats = &msg.stats
		return v, nil

	case refreshViewMsg:
		return v, v.loadStats()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keyList):
			return v, pushView(newPlanListView(v.state))
		case key.Matches(msg, keyRefresh):
			v.loading = true
			return v, v.loadStats()
		}
	}
	return v, nil
}

func (v *statsView) View() string {
	if v.loading && v.stats == nil {
		return "\n  " + formatter.Dim("Loading stats...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+FriendlyError(v.err).Error())
	}
	if v.stats == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(formatter.FormatStats(*v.stats))
	return b.String()
}
