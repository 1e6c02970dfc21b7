package cli

import (
	"fmt"

	"github.com/alexanderramin/planeasy/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// outputPane shows command bar output in place of the active view until
// the next non-scroll key. Output taller than the content area scrolls.
type outputPane struct {
	text string
	vp   viewport.Model
}

func newOutputPane() outputPane {
	vp := viewport.New(0, 0)
	// Letters stay free so they dismiss the pane or reach global shortcuts.
	vp.KeyMap = viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up")),
		Down:         key.NewBinding(key.WithKeys("down")),
	}
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3
	return outputPane{vp: vp}
}

func (p *outputPane) active() bool { return p.text != "" }

func (p *outputPane) show(text string, width, height int) {
	p.text = text
	p.vp.SetContent(text)
	p.resize(width, height)
	p.vp.GotoTop()
}

func (p *outputPane) resize(width, height int) {
	p.vp.Width = width
	p.vp.Height = height
}

func (p *outputPane) clear() { p.text = "" }

func (p *outputPane) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.vp, cmd = p.vp.Update(msg)
	return cmd
}

func (p *outputPane) scrollable() bool {
	return p.active() && p.vp.TotalLineCount() > p.vp.Height
}

func (p *outputPane) view(sized bool) string {
	if !sized {
		return p.text
	}
	return p.vp.View()
}

// position is the status bar marker: [TOP], [END] or a percentage.
func (p *outputPane) position() string {
	switch {
	case p.vp.AtTop():
		return "[TOP]"
	case p.vp.AtBottom():
		return "[END]"
	}
	return fmt.Sprintf("[%d%%]", int(p.vp.ScrollPercent()*100))
}

// isOutputScrollKey reports whether k scrolls the pane instead of
// dismissing it.
func isOutputScrollKey(k tea.KeyMsg) bool {
	switch k.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown,
		tea.KeyHome, tea.KeyEnd, tea.KeyCtrlU, tea.KeyCtrlD:
		return true
	}
	return false
}

func (p *outputPane) hints() []string {
	return []string{
		formatter.Dim(p.position()),
		formatter.Dim("↑↓ pgup/pgdn: scroll"),
		formatter.Dim("esc: dismiss"),
	}
}
