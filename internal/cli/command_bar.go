package cli

import (
	"strings"

	"github.com/alexanderramin/planeasy/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	promptWord     = "planeasy"
	promptPlainLen = len(promptWord + " > ")
)

// commandBar is the one-line prompt under every view. It is focused with
// ":" and returns focus to the view on esc or after a command runs.
type commandBar struct {
	state   *SharedState
	input   textinput.Model
	history *commandHistory
}

func newCommandBar(state *SharedState) commandBar {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 500
	in.ShowSuggestions = true
	in.KeyMap.NextSuggestion = key.NewBinding(key.WithKeys("ctrl+n"))
	in.KeyMap.PrevSuggestion = key.NewBinding(key.WithKeys("ctrl+p"))

	return commandBar{
		state:   state,
		input:   in,
		history: openHistory(state.App.HistoryPath),
	}
}

func (c *commandBar) Focus()        { c.input.Focus() }
func (c *commandBar) Blur()         { c.input.Blur() }
func (c *commandBar) Focused() bool { return c.input.Focused() }

// SetWidth fits the input to a terminal w columns wide.
func (c *commandBar) SetWidth(w int) {
	c.input.Width = w - promptPlainLen - 1
}

// Update handles a key while the bar is focused.
func (c *commandBar) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		line := strings.TrimSpace(c.input.Value())
		c.input.Reset()
		c.input.SetSuggestions(nil)
		c.history.record(line)
		if line == "" {
			return nil
		}
		return c.executeCommand(line)
	case tea.KeyUp:
		c.recallOlder()
		return nil
	case tea.KeyDown:
		c.recallNewer()
		return nil
	case tea.KeyEsc:
		c.Blur()
		return nil
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	c.input.SetSuggestions(completeLine(c.input.Value()))
	return cmd
}

// UpdateNonKey passes ticks such as cursor blink to the input.
func (c *commandBar) UpdateNonKey(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

func (c *commandBar) View() string {
	prompt := formatter.StylePurple.Render(promptWord) + " " + formatter.Dim("❯") + " "
	if !c.Focused() {
		return prompt + formatter.Dim("press : to type a command")
	}
	return prompt + c.input.View()
}

func (c *commandBar) recallOlder() {
	if line, ok := c.history.prev(); ok {
		c.setLine(line)
	}
}

func (c *commandBar) recallNewer() {
	c.setLine(c.history.next())
}

func (c *commandBar) setLine(line string) {
	c.input.SetValue(line)
	c.input.CursorEnd()
}
