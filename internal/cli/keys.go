package cli

import "github.com/charmbracelet/bubbles/key"

// Bindings shared by the plan views. A binding with help text also shows up
// in the hint line of any view that lists it in ShortHelp.
var (
	keyUp      = key.NewBinding(key.WithKeys("up", "k"))
	keyDown    = key.NewBinding(key.WithKeys("down", "j"))
	keyToggle  = key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "done"))
	keyDetail  = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details"))
	keyAdd     = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	keyEdit    = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	keyDelete  = key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete"))
	keyList    = key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "list"))
	keyStats   = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stats"))
	keyRefresh = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh"))
	keyNextCat = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "category"))
	keyPrevCat = key.NewBinding(key.WithKeys("shift+tab"))

	// q is handled by appModel. This copy only feeds the hint line.
	keyQuit = key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))
)
