package cli

import (
	"errors"
	"strings"
	"unicode"

	"github.com/alexanderramin/planeasy/internal/cli/formatter"
	"github.com/alexanderramin/planeasy/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

// executeCommand dispatches a text command and returns a tea.Cmd.
// View commands navigate, plan commands open forms or act directly, and
// anything else runs through the cobra tree with its output captured.
func (c *commandBar) executeCommand(input string) tea.Cmd {
	parts, err := splitShellArgs(input)
	if err != nil {
		return outputCmd(shellError(err))
	}
	if len(parts) == 0 {
		return nil
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "today", "home":
		return msgCmd(popToRootMsg{})
	case "back":
		return popView()
	case "list", "ls":
		if len(args) == 0 {
			return pushView(newPlanListView(c.state))
		}
		if len(args) == 1 && !strings.HasPrefix(args[0], "-") {
			c.state.Category = args[0]
			return pushView(newPlanListView(c.state))
		}
		return c.cobra(parts)
	case "stats":
		if len(args) == 0 {
			return pushView(newStatsView(c.state))
		}
	case "add":
		if len(args) == 0 {
			return startAddPlanWizard(c.state)
		}
	case "edit":
		if len(args) == 1 {
			return c.withPlan(args[0], func(p domain.Plan) tea.Cmd {
				return startEditPlanWizard(c.state, p)
			})
		}
	case "done":
		if len(args) == 1 {
			return c.withPlan(args[0], func(p domain.Plan) tea.Cmd {
				return execTogglePlan(c.state, p.ID)
			})
		}
	case "rm", "remove", "delete":
		if len(args) == 1 {
			return c.withPlan(args[0], func(p domain.Plan) tea.Cmd {
				return execDeletePlan(c.state, p)
			})
		}
	case "show":
		if len(args) == 1 {
			return c.withPlan(args[0], func(p domain.Plan) tea.Cmd {
				return outputCmd(formatter.FormatPlanDetail(p, c.state.Now(), c.state.Location()))
			})
		}
	case "help":
		if len(args) == 0 {
			return outputCmd(formatter.FormatShellHelp())
		}
	case "clear":
		return nil
	case "exit", "quit":
		return msgCmd(quitMsg{})
	case "tui":
		return outputCmd(formatter.StyleYellow.Render("Already in the TUI."))
	}

	return c.cobra(parts)
}

// cobra runs parts through the command tree. Commands that write refresh
// the views behind the output.
func (c *commandBar) cobra(parts []string) tea.Cmd {
	out := captureCobraOutput(c.state.App, parts)
	if len(parts) > 0 && mutatingCommands[strings.ToLower(parts[0])] {
		return tea.Batch(outputCmd(out), refreshViews())
	}
	return outputCmd(out)
}

var mutatingCommands = map[string]bool{
	"add": true, "edit": true, "done": true,
	"rm": true, "remove": true, "delete": true,
	"import": true, "reminders": true,
}

// withPlan resolves ref to a plan and hands it to next, or reports the
// lookup failure.
func (c *commandBar) withPlan(ref string, next func(domain.Plan) tea.Cmd) tea.Cmd {
	p, err := c.state.App.Plans.Get(c.state.Context(), ref)
	if err != nil {
		return outputCmd(shellError(err))
	}
	return next(p)
}

var (
	errUnterminatedEscape = errors.New("unterminated escape sequence")
	errUnterminatedQuote  = errors.New("unterminated quoted string")
)

// splitShellArgs splits a command line into words. Single quotes are
// literal, double quotes allow backslash escapes, and a bare backslash
// escapes the next rune.
func splitShellArgs(input string) ([]string, error) {
	var (
		words   []string
		word    strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)
	for _, r := range input {
		switch {
		case escaped:
			word.WriteRune(r)
			escaped = false
		case quote == '\'':
			if r == quote {
				quote = 0
			} else {
				word.WriteRune(r)
			}
		case r == '\\' && quote != '\'':
			escaped, inWord = true, true
		case quote == '"':
			if r == quote {
				quote = 0
			} else {
				word.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote, inWord = r, true
		case unicode.IsSpace(r):
			if inWord {
				words = append(words, word.String())
				word.Reset()
				inWord = false
			}
		default:
			word.WriteRune(r)
			inWord = true
		}
	}

	switch {
	case escaped:
		return nil, errUnterminatedEscape
	case quote != 0:
		return nil, errUnterminatedQuote
	}
	if inWord {
		words = append(words, word.String())
	}
	return words, nil
}
