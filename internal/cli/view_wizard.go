package cli

import (
	"github.com/alexanderramin/planeasy/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

var wizardKeys = []key.Binding{
	key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
	key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous")),
	key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}

// formView hosts a huh form on the view stack. Whatever ends the form,
// submit or cancel, it emits exactly one wizardCompleteMsg and then goes
// inert until the app pops it.
type formView struct {
	title    string
	form     *huh.Form
	onSubmit func() tea.Cmd
	finished bool
}

func newWizardView(title string, form *huh.Form, onSubmit func() tea.Cmd) *formView {
	return &formView{title: title, form: form, onSubmit: onSubmit}
}

// startWizardCmd pushes a form view for form.
func startWizardCmd(title string, form *huh.Form, onSubmit func() tea.Cmd) tea.Cmd {
	return pushView(newWizardView(title, form, onSubmit))
}

func (v *formView) Init() tea.Cmd { return v.form.Init() }

func (v *formView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if v.finished {
		return v, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		return v, v.cancel()
	}

	model, cmd := v.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		v.form = f
	}

	switch v.form.State {
	case huh.StateCompleted:
		v.finished = true
		var next tea.Cmd
		if v.onSubmit != nil {
			next = v.onSubmit()
		}
		done := tea.Batch(cmd, next)
		return v, func() tea.Msg { return wizardCompleteMsg{nextCmd: done} }
	case huh.StateAborted:
		return v, v.cancel()
	}
	return v, cmd
}

func (v *formView) cancel() tea.Cmd {
	v.finished = true
	return func() tea.Msg { return wizardCompleteOutput(formatter.Dim("Cancelled.")) }
}

func (v *formView) View() string             { return v.form.View() }
func (v *formView) ID() ViewID               { return ViewForm }
func (v *formView) Title() string            { return v.title }
func (v *formView) ShortHelp() []key.Binding { return wizardKeys }
