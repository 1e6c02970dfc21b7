package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID names a screen kind on the view stack.
type ViewID int

const (
	ViewDashboard ViewID = iota
	ViewPlanList
	ViewStats
	ViewForm
)

var viewNames = [...]string{
	ViewDashboard: "dashboard",
	ViewPlanList:  "plans",
	ViewStats:     "stats",
	ViewForm:      "form",
}

func (id ViewID) String() string {
	if id < 0 || int(id) >= len(viewNames) {
		return "unknown"
	}
	return viewNames[id]
}

// capturesInput reports whether the screen owns the keyboard. Global keys
// such as q, : and esc are delivered to it as ordinary input.
func (id ViewID) capturesInput() bool {
	return id == ViewForm
}

// View is a screen on the stack. Title feeds the header breadcrumb and
// ShortHelp the hint line under the content.
type View interface {
	tea.Model
	ID() ViewID
	ShortHelp() []key.Binding
	Title() string
}
