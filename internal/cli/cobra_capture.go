package cli

import (
	"bytes"
	"strings"

	"github.com/alexanderramin/planeasy/internal/cli/formatter"
)

// captureCobraOutput runs args through a fresh command tree and returns what
// it printed, so command output lands in the TUI viewport instead of the
// alternate screen. The copy of app reports a non-terminal so a bare
// invocation prints help rather than nesting a second TUI.
func captureCobraOutput(app *App, args []string) string {
	shell := *app
	shell.IsInteractive = func() bool { return false }

	var buf bytes.Buffer
	root := NewRootCmd(&shell)
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		if buf.Len() > 0 && !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
			buf.WriteString("\n")
		}
		buf.WriteString(shellError(err))
		if strings.Contains(err.Error(), "unknown command") {
			buf.WriteString("\n" + formatter.Dim("Type 'help' for available commands."))
		}
	}

	return strings.TrimRight(buf.String(), "\n")
}
