package cli

import tea "github.com/charmbracelet/bubbletea"

// Messages the views and the command bar send to appModel.
type (
	pushViewMsg  struct{ view View }
	popViewMsg   struct{}
	popToRootMsg struct{}

	// refreshViewMsg makes every view on the stack reload.
	refreshViewMsg struct{}

	// cmdOutputMsg fills the output pane.
	cmdOutputMsg struct{ output string }

	// wizardCompleteMsg ends a form. The form is popped before nextCmd
	// runs, and views reload only after nextCmd has returned.
	wizardCompleteMsg struct{ nextCmd tea.Cmd }

	quitMsg struct{}
)

func msgCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func pushView(v View) tea.Cmd { return msgCmd(pushViewMsg{view: v}) }
func popView() tea.Cmd        { return msgCmd(popViewMsg{}) }
func refreshViews() tea.Cmd   { return msgCmd(refreshViewMsg{}) }

// outputCmd shows s in the output pane. Empty output is no command.
func outputCmd(s string) tea.Cmd {
	if s == "" {
		return nil
	}
	return msgCmd(cmdOutputMsg{output: s})
}

// thenRefresh runs cmd to completion and only then reloads every view, so
// the reload sees whatever cmd saved.
func thenRefresh(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return refreshViews()
	}
	return func() tea.Msg {
		return tea.BatchMsg{msgCmd(cmd()), refreshViews()}
	}
}
