package cli

import (
	"testing"

	"github.com/alexanderramin/planeasy/internal/teatest"
)

// TestDriver adds appModel inspection to the generic driver.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver starts the TUI for app on a 120x40 terminal with the
// dashboard already loaded.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()
	d := &TestDriver{Driver: teatest.New(t, newAppModel(app), teatest.WithSize(120, 40))}
	d.DrainInit()
	return d
}

// Command runs input through the command bar the way a user would, and
// leaves the bar unfocused so later keys reach the view.
func (d *TestDriver) Command(input string) {
	d.T.Helper()
	d.PressKey(':')
	d.TypeLine(input)
	if d.CmdBarFocused() {
		d.PressEsc()
	}
}

func (d *TestDriver) appModel() appModel { return d.Model.(appModel) }

func (d *TestDriver) dashboard() *dashboardView {
	return d.appModel().viewStack[0].(*dashboardView)
}

// ActiveViewID is the top view's ID, or -1 on an empty stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	if v := m.activeView(); v != nil {
		return v.ID()
	}
	return ViewID(-1)
}

func (d *TestDriver) ViewStackLen() int { return len(d.appModel().viewStack) }

// ViewStackIDs lists the stack bottom to top.
func (d *TestDriver) ViewStackIDs() []ViewID {
	stack := d.appModel().viewStack
	ids := make([]ViewID, 0, len(stack))
	for _, v := range stack {
		ids = append(ids, v.ID())
	}
	return ids
}

func (d *TestDriver) State() *SharedState { return d.appModel().state }

func (d *TestDriver) IsQuitting() bool {
	return d.Quitting || d.appModel().quitting
}

func (d *TestDriver) CmdBarFocused() bool {
	m := d.appModel()
	return m.cmdBar.Focused()
}

// LastOutput is the text in the output pane, "" when it is dismissed.
func (d *TestDriver) LastOutput() string { return d.appModel().output.text }
