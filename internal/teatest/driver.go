// Package teatest drives a bubbletea model without a tea.Program.
//
// Every Update runs on the test goroutine and the returned Cmds are run to
// completion before the call returns, so assertions see a settled model.
// Cmds that block (cursor blink timers) are abandoned after a timeout.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many follow-up messages one input may chain.
const MaxDrainDepth = 100

// DefaultCmdTimeout is enough for a store round trip and short of a
// cursor blink interval.
const DefaultCmdTimeout = 100 * time.Millisecond

// Driver feeds input to Model and settles it.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting records a tea.QuitMsg seen while draining. The model never
	// sees that message under a real Program, so the driver tracks it.
	Quitting bool

	cmdTimeout time.Duration
}

type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) { d.Resize(w, h) }
}

func WithCmdTimeout(timeout time.Duration) Option {
	return func(d *Driver) { d.cmdTimeout = timeout }
}

// New wraps model. Call DrainInit to run its Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model, cmdTimeout: DefaultCmdTimeout}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init())
}

// Send runs msg through Update and drains what follows. Input after a quit
// is dropped.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	d.drain(d.update(msg))
}

// Resize sends a WindowSizeMsg.
func (d *Driver) Resize(w, h int) {
	d.Send(tea.WindowSizeMsg{Width: w, Height: h})
}

func (d *Driver) View() string { return d.Model.View() }

func (d *Driver) SendKey(k tea.KeyMsg) {
	d.T.Helper()
	d.Send(k)
}

// PressKeys sends one key event per type, in order.
func (d *Driver) PressKeys(types ...tea.KeyType) {
	d.T.Helper()
	for _, kt := range types {
		d.SendKey(tea.KeyMsg{Type: kt})
	}
}

func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (d *Driver) PressSpace() {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
}

func (d *Driver) PressEnter()    { d.T.Helper(); d.PressKeys(tea.KeyEnter) }
func (d *Driver) PressEsc()      { d.T.Helper(); d.PressKeys(tea.KeyEsc) }
func (d *Driver) PressCtrlC()    { d.T.Helper(); d.PressKeys(tea.KeyCtrlC) }
func (d *Driver) PressTab()      { d.T.Helper(); d.PressKeys(tea.KeyTab) }
func (d *Driver) PressShiftTab() { d.T.Helper(); d.PressKeys(tea.KeyShiftTab) }
func (d *Driver) PressUp()       { d.T.Helper(); d.PressKeys(tea.KeyUp) }
func (d *Driver) PressDown()     { d.T.Helper(); d.PressKeys(tea.KeyDown) }

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

func (d *Driver) TypeLine(s string) {
	d.T.Helper()
	d.Type(s)
	d.PressEnter()
}

func (d *Driver) update(msg tea.Msg) tea.Cmd {
	next, cmd := d.Model.Update(msg)
	d.Model = next
	return cmd
}

type pendingCmd struct {
	cmd   tea.Cmd
	depth int
}

// drain runs cmd and everything it leads to, depth first. The members of
// a tea.BatchMsg run in order, each fully settled before the next.
func (d *Driver) drain(cmd tea.Cmd) {
	d.T.Helper()
	stack := []pendingCmd{{cmd: cmd}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.cmd == nil {
			continue
		}
		if p.depth >= MaxDrainDepth {
			d.T.Logf("teatest: gave up after %d chained messages", MaxDrainDepth)
			continue
		}

		msg := d.run(p.cmd)
		switch msg := msg.(type) {
		case nil:
		case tea.BatchMsg:
			for i := len(msg) - 1; i >= 0; i-- {
				stack = append(stack, pendingCmd{cmd: msg[i], depth: p.depth + 1})
			}
		case tea.QuitMsg:
			d.Quitting = true
			d.update(msg)
		default:
			if isCursorBlink(msg) {
				continue
			}
			stack = append(stack, pendingCmd{cmd: d.update(msg), depth: p.depth + 1})
		}
	}
}

// run executes cmd, returning nil when it outlives the timeout.
func (d *Driver) run(cmd tea.Cmd) tea.Msg {
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		return msg
	case <-time.After(d.cmdTimeout):
		return nil
	}
}

// isCursorBlink matches the unexported blink messages of bubbles/cursor,
// which would otherwise chain into more timer Cmds.
func isCursorBlink(msg tea.Msg) bool {
	name := strings.ToLower(fmt.Sprintf("%T", msg))
	return strings.Contains(name, "blink")
}
