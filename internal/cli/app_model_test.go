package cli

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubView records what it is sent.
type stubView struct {
	id    ViewID
	title string
	text  string
	seen  []tea.Msg
}

func newStubView(id ViewID, title, text string) *stubView {
	return &stubView{id: id, title: title, text: text}
}

func (v *stubView) Init() tea.Cmd { return nil }
func (v *stubView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	v.seen = append(v.seen, msg)
	return v, nil
}
func (v *stubView) View() string             { return v.text }
func (v *stubView) ID() ViewID               { return v.id }
func (v *stubView) ShortHelp() []key.Binding { return nil }
func (v *stubView) Title() string            { return v.title }

func send(m appModel, msg tea.Msg) (appModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(appModel), cmd
}

func runeKey(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

// modelWith returns a model whose stack is exactly views.
func modelWith(t *testing.T, views ...View) appModel {
	m := newAppModel(testApp(t))
	if len(views) > 0 {
		m.viewStack = views
	}
	return m
}

func TestNewAppModelStartsAtDashboard(t *testing.T) {
	m := newAppModel(testApp(t))

	require.Len(t, m.viewStack, 1)
	assert.Equal(t, ViewDashboard, m.activeView().ID())
	assert.Equal(t, "All", m.state.Category)
	assert.False(t, m.cmdBar.Focused())
}

func TestAppModel_StackNavigation(t *testing.T) {
	m := modelWith(t)
	plans := newStubView(ViewPlanList, "Plans", "")

	m, cmd := send(m, pushViewMsg{view: plans})
	assert.Nil(t, cmd)
	m, _ = send(m, pushViewMsg{view: newStubView(ViewStats, "Stats", "")})
	assert.Equal(t, []ViewID{ViewDashboard, ViewPlanList, ViewStats}, stackIDs(m))

	m, cmd = send(m, popViewMsg{})
	assert.Nil(t, cmd)
	assert.Equal(t, plans, m.activeView())

	m, cmd = send(m, popToRootMsg{})
	assert.Equal(t, []ViewID{ViewDashboard}, stackIDs(m))
	require.NotNil(t, cmd)
	assert.IsType(t, refreshViewMsg{}, cmd())

	m, _ = send(m, popViewMsg{})
	assert.Equal(t, []ViewID{ViewDashboard}, stackIDs(m), "the dashboard is never popped")
}

func stackIDs(m appModel) []ViewID {
	ids := make([]ViewID, len(m.viewStack))
	for i, v := range m.viewStack {
		ids[i] = v.ID()
	}
	return ids
}

func TestAppModel_RefreshAndLoadsReachEveryView(t *testing.T) {
	type loaded struct{}
	bottom := newStubView(ViewDashboard, "Today", "")
	top := newStubView(ViewPlanList, "Plans", "")
	m := modelWith(t, bottom, top)

	m, _ = send(m, refreshViewMsg{})
	_, _ = send(m, loaded{})

	for _, v := range []*stubView{bottom, top} {
		require.Len(t, v.seen, 2)
		assert.IsType(t, refreshViewMsg{}, v.seen[0])
		assert.IsType(t, loaded{}, v.seen[1])
	}
}

func TestAppModel_ResizeGoesToActiveViewOnly(t *testing.T) {
	bottom := newStubView(ViewDashboard, "Today", "")
	top := newStubView(ViewPlanList, "Plans", "")
	m := modelWith(t, bottom, top)

	m, cmd := send(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Nil(t, cmd)
	assert.Equal(t, 100, m.state.Width)
	assert.Equal(t, 30, m.state.Height)
	assert.Equal(t, 25, m.state.ContentHeight())
	assert.Positive(t, m.cmdBar.input.Width)
	assert.Empty(t, bottom.seen)
	require.Len(t, top.seen, 1)
	assert.IsType(t, tea.WindowSizeMsg{}, top.seen[0])
}

func TestAppModel_GlobalKeys(t *testing.T) {
	t.Run("colon focuses the command bar", func(t *testing.T) {
		m, cmd := send(modelWith(t), runeKey(':'))
		assert.Nil(t, cmd)
		assert.True(t, m.cmdBar.Focused())
	})

	t.Run("q quits", func(t *testing.T) {
		m, cmd := send(modelWith(t, newStubView(ViewDashboard, "Today", "")), runeKey('q'))
		require.NotNil(t, cmd)
		assert.True(t, m.quitting)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.Empty(t, m.View())
	})

	t.Run("esc goes back and dismisses output", func(t *testing.T) {
		m := modelWith(t, newStubView(ViewDashboard, "Today", ""), newStubView(ViewPlanList, "Plans", ""))
		m.output.text = "stale output"

		m, cmd := send(m, tea.KeyMsg{Type: tea.KeyEsc})
		assert.Nil(t, cmd)
		assert.Len(t, m.viewStack, 1)
		assert.False(t, m.output.active())
	})

	t.Run("other keys reach the active view", func(t *testing.T) {
		v := newStubView(ViewPlanList, "Plans", "")
		_, _ = send(modelWith(t, newStubView(ViewDashboard, "Today", ""), v), runeKey('j'))
		require.Len(t, v.seen, 1)
		assert.Equal(t, "j", v.seen[0].(tea.KeyMsg).String())
	})
}

func TestAppModel_FormOwnsKeyboard(t *testing.T) {
	form := newStubView(ViewForm, "Add Plan", "")
	m := modelWith(t, newStubView(ViewDashboard, "Today", ""), form)

	for _, k := range []tea.KeyMsg{runeKey('q'), runeKey(':'), {Type: tea.KeyEsc}} {
		m, _ = send(m, k)
	}
	assert.False(t, m.quitting)
	assert.False(t, m.cmdBar.Focused())
	assert.Len(t, m.viewStack, 2)
	assert.Len(t, form.seen, 3)

	m, cmd := send(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.True(t, m.quitting, "ctrl+c still quits")
}

func TestAppModel_WizardCompletePopsThenRuns(t *testing.T) {
	m := modelWith(t, newStubView(ViewDashboard, "Today", ""), newStubView(ViewForm, "Wizard", ""))
	next := outputCmd("done")

	m, cmd := send(m, wizardCompleteMsg{nextCmd: next})
	require.NotNil(t, cmd)
	assert.Len(t, m.viewStack, 1)
	assert.False(t, m.cmdBar.Focused())

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	var kinds []string
	for _, c := range batch {
		if c != nil {
			kinds = append(kinds, fmt.Sprintf("%T", c()))
		}
	}
	assert.ElementsMatch(t, []string{"cli.cmdOutputMsg", "cli.refreshViewMsg"}, kinds)
}

func TestAppModel_WizardCompleteRefreshesAfterNextCmd(t *testing.T) {
	m := modelWith(t, newStubView(ViewDashboard, "Today", ""), newStubView(ViewForm, "Add Plan", ""))
	saved := false
	next := func() tea.Msg {
		saved = true
		return nil
	}

	_, cmd := send(m, wizardCompleteMsg{nextCmd: next})
	require.NotNil(t, cmd)
	assert.False(t, saved)

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	assert.True(t, saved, "the follow-up finishes before any reload is issued")
	require.Len(t, batch, 2)
	assert.IsType(t, refreshViewMsg{}, batch[1]())
}

func TestAppModel_WizardCompleteWithoutFollowUpRefreshes(t *testing.T) {
	m := modelWith(t, newStubView(ViewDashboard, "Today", ""), newStubView(ViewForm, "Add Plan", ""))

	m, cmd := send(m, wizardCompleteMsg{})
	require.NotNil(t, cmd)
	assert.Len(t, m.viewStack, 1)
	assert.IsType(t, refreshViewMsg{}, cmd())
}

func TestAppModel_Header(t *testing.T) {
	m := modelWith(t, newStubView(ViewDashboard, "Today", ""), newStubView(ViewPlanList, "Plans", ""))
	m.state.Category = "Work"

	header := m.renderHeader()
	assert.Contains(t, header, "planeasy")
	assert.Contains(t, header, "Today › Plans")
	assert.Contains(t, header, "Work")

	m.state.Category = "All"
	assert.NotContains(t, m.renderHeader(), "All", "no badge without a filter")
}

func TestAppModel_StatusBarHints(t *testing.T) {
	m := modelWith(t, newStubView(ViewDashboard, "Today", ""))
	assert.Contains(t, m.renderStatusBar(), ": command")
	assert.NotContains(t, m.renderStatusBar(), "esc: back")

	m.viewStack = append(m.viewStack, newStubView(ViewPlanList, "Plans", ""))
	assert.Contains(t, m.renderStatusBar(), "esc: back")
}

func TestViewCapturesInput(t *testing.T) {
	assert.False(t, viewCapturesInput(nil))
	assert.True(t, viewCapturesInput(newStubView(ViewForm, "Form", "")))
	for _, id := range []ViewID{ViewDashboard, ViewPlanList, ViewStats} {
		assert.False(t, viewCapturesInput(newStubView(id, "", "")), id.String())
	}
}

func TestViewID_String(t *testing.T) {
	assert.Equal(t, "dashboard", ViewDashboard.String())
	assert.Equal(t, "plans", ViewPlanList.String())
	assert.Equal(t, "stats", ViewStats.String())
	assert.Equal(t, "form", ViewForm.String())
	assert.Equal(t, "unknown", ViewID(42).String())
}

func TestAppModel_LongOutputScrolls(t *testing.T) {
	m := modelWith(t, newStubView(ViewDashboard, "Today", "dashboard"))
	m, _ = send(m, tea.WindowSizeMsg{Width: 80, Height: 10})

	lines := make([]string, 50)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	m, _ = send(m, cmdOutputMsg{output: strings.Join(lines, "\n")})

	require.True(t, m.output.scrollable())
	assert.Contains(t, m.View(), "line 1")
	assert.NotContains(t, m.View(), "dashboard")
	assert.Contains(t, m.renderStatusBar(), "[TOP]")

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyPgDown})
	assert.True(t, m.output.active())
	assert.NotContains(t, m.renderStatusBar(), "[TOP]")

	m, _ = send(m, runeKey('x'))
	assert.False(t, m.output.active())
	assert.Contains(t, m.View(), "dashboard")
}

func TestAppModel_ShortOutputHasNoScrollHints(t *testing.T) {
	m := modelWith(t, newStubView(ViewDashboard, "Today", ""))
	m, _ = send(m, tea.WindowSizeMsg{Width: 80, Height: 40})
	m, _ = send(m, cmdOutputMsg{output: "short output"})

	assert.True(t, m.output.active())
	assert.Contains(t, m.View(), "short output")
	assert.NotContains(t, m.View(), "pgup/pgdn")
}

func TestAppModel_EmptyOutputIsIgnored(t *testing.T) {
	m, _ := send(modelWith(t), cmdOutputMsg{})
	assert.False(t, m.output.active())
}

func TestIsOutputScrollKey(t *testing.T) {
	for _, k := range []tea.KeyType{
		tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown,
		tea.KeyHome, tea.KeyEnd, tea.KeyCtrlU, tea.KeyCtrlD,
	} {
		assert.True(t, isOutputScrollKey(tea.KeyMsg{Type: k}), k.String())
	}
	for _, k := range []tea.KeyMsg{runeKey('q'), runeKey(':'), {Type: tea.KeyEsc}, {Type: tea.KeyEnter}} {
		assert.False(t, isOutputScrollKey(k), k.String())
	}
}

func TestFormView_CancelEmitsOnce(t *testing.T) {
	var confirmed bool
	v := newWizardView("Confirm Delete", wizardConfirm("Delete?", &confirmed), func() tea.Cmd {
		t.Fatal("submit must not run on cancel")
		return nil
	})
	v.Init()

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, wizardCompleteMsg{}, cmd())

	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd, "a finished form ignores further input")
	assert.Equal(t, ViewForm, v.ID())
	assert.Equal(t, "Confirm Delete", v.Title())
}
