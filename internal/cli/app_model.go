package cli

import (
	"strings"

	"github.com/alexanderramin/planeasy/internal/cli/formatter"
	"github.com/alexanderramin/planeasy/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

// appModel is the root bubbletea model. Views live on a stack whose bottom
// is always the dashboard; the command bar and output pane sit above it.
type appModel struct {
	state     *SharedState
	viewStack []View
	cmdBar    commandBar
	output    outputPane
	quitting  bool
}

func newAppModel(app *App) appModel {
	state := &SharedState{App: app, Category: domain.CategoryAll}
	return appModel{
		state:     state,
		viewStack: []View{newDashboardView(state)},
		cmdBar:    newCommandBar(state),
		output:    newOutputPane(),
	}
}

func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// updateActive runs msg through the top view only.
func (m *appModel) updateActive(msg tea.Msg) tea.Cmd {
	v := m.activeView()
	if v == nil {
		return nil
	}
	updated, cmd := v.Update(msg)
	m.viewStack[len(m.viewStack)-1] = updated.(View)
	return cmd
}

// broadcast runs msg through every view, bottom first.
func (m *appModel) broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.viewStack))
	for i, v := range m.viewStack {
		updated, cmd := v.Update(msg)
		m.viewStack[i] = updated.(View)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// pop drops the top view, never the dashboard.
func (m *appModel) pop() {
	if len(m.viewStack) > 1 {
		m.viewStack = m.viewStack[:len(m.viewStack)-1]
	}
}

func (m appModel) Init() tea.Cmd {
	if v := m.activeView(); v != nil {
		return v.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m, m.resize(msg)
	case tea.MouseMsg:
		if m.output.active() {
			return m, m.output.update(msg)
		}
	case pushViewMsg, popViewMsg, popToRootMsg, wizardCompleteMsg, quitMsg:
		return m, m.navigate(msg)
	case refreshViewMsg:
		// Views under the top one reload too, so the dashboard is current
		// when a list above it is popped.
		return m, m.broadcast(msg)
	case cmdOutputMsg:
		m.output.show(msg.output, m.state.Width, m.state.ContentHeight())
		return m, nil
	}

	// Anything else (cursor blinks, load results) goes to the focused bar and
	// to every view, since a view below the top may own a pending load.
	var barCmd tea.Cmd
	if m.cmdBar.Focused() {
		barCmd = m.cmdBar.UpdateNonKey(msg)
	}
	return m, tea.Batch(barCmd, m.broadcast(msg))
}

func (m *appModel) resize(msg tea.WindowSizeMsg) tea.Cmd {
	m.state.Width, m.state.Height = msg.Width, msg.Height
	m.cmdBar.SetWidth(msg.Width)
	if m.output.active() {
		m.output.resize(msg.Width, m.state.ContentHeight())
	}
	return m.updateActive(msg)
}

func (m *appModel) navigate(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case pushViewMsg:
		m.cmdBar.Blur()
		m.output.clear()
		m.viewStack = append(m.viewStack, msg.view)
		return msg.view.Init()
	case popViewMsg:
		m.pop()
	case popToRootMsg:
		m.cmdBar.Blur()
		m.output.clear()
		m.viewStack = m.viewStack[:1]
		return refreshViews()
	case wizardCompleteMsg:
		// The form leaves the stack before its follow-up runs, so the
		// follow-up's output lands on the view underneath.
		m.pop()
		m.output.clear()
		return thenRefresh(msg.nextCmd)
	case quitMsg:
		m.quitting = true
		return tea.Quit
	}
	return nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if m.cmdBar.Focused() {
		if msg.Type == tea.KeyEnter {
			m.output.clear()
		}
		return m, m.cmdBar.Update(msg)
	}

	if m.output.active() {
		if isOutputScrollKey(msg) {
			return m, m.output.update(msg)
		}
		m.output.clear()
	}

	if viewCapturesInput(m.activeView()) {
		return m, m.updateActive(msg)
	}

	switch {
	case msg.String() == ":":
		m.cmdBar.Focus()
		return m, nil
	case msg.String() == "q":
		m.quitting = true
		return m, tea.Quit
	case msg.Type == tea.KeyEsc:
		m.pop()
		return m, nil
	}
	return m, m.updateActive(msg)
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	content := ""
	if m.output.active() {
		content = m.output.view(m.state.Height > 0)
	} else if v := m.activeView(); v != nil {
		content = v.View()
	}

	out := strings.Join([]string{
		m.renderHeader(),
		content,
		m.renderStatusBar(),
		m.cmdBar.View(),
	}, "\n")

	// Pad to full height so the alt-screen renderer leaves no stale lines.
	if lines := strings.Count(out, "\n") + 1; m.state.Height > lines {
		out += strings.Repeat("\n", m.state.Height-lines)
	}
	return out
}

func (m *appModel) rule() string {
	return formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
}

func (m *appModel) renderHeader() string {
	header := formatter.StylePurple.Render("planeasy")

	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	if len(crumbs) > 0 {
		header += " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}
	if cat := m.state.Category; cat != "" && cat != domain.CategoryAll {
		header += "  " + formatter.Dim("[") + formatter.CategoryBadge(cat) + formatter.Dim("]")
	}
	return header + "\n" + m.rule()
}

func (m *appModel) renderStatusBar() string {
	var hints []string
	switch {
	case m.output.scrollable():
		hints = m.output.hints()
	case !m.output.active():
		if v := m.activeView(); v != nil {
			for _, b := range v.ShortHelp() {
				hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
			}
		}
		if !m.cmdBar.Focused() {
			if len(m.viewStack) > 1 {
				hints = append(hints, formatter.Dim("esc: back"))
			}
			hints = append(hints, formatter.Dim(": command"))
		}
	}
	return m.rule() + "\n" + strings.Join(hints, "  ")
}

// viewCapturesInput reports whether v takes every key, bypassing the
// global bindings.
func viewCapturesInput(v View) bool {
	return v != nil && v.ID().capturesInput()
}
