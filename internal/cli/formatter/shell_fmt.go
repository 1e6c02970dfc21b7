package formatter

import (
	"fmt"
	"strings"
)

type helpEntry struct{ usage, summary string }

type helpSection struct {
	title   string
	entries []helpEntry
}

var shellHelp = []helpSection{
	{"Views", []helpEntry{
		{"today", "Dashboard of today's open plans"},
		{"list [category]", "Plans grouped by day"},
		{"stats", "Completion progress"},
		{"back", "Return to the previous view"},
	}},
	{"Plans", []helpEntry{
		{"add", "Add a plan (form)"},
		{"edit <id>", "Edit a plan (form)"},
		{"done <id>", "Toggle completion"},
		{"rm <id>", "Delete a plan"},
		{"show <id>", "Plan details"},
	}},
	{"Utilities", []helpEntry{
		{"help", "Show this command reference"},
		{"exit / quit", "Quit planeasy"},
	}},
}

const shellHelpFooter = "Every planeasy subcommand runs here too, e.g. 'export --format yaml'.\n" +
	"IDs may be shortened to any unique prefix."

// FormatShellHelp renders the command reference shown by the TUI command bar.
func FormatShellHelp() string {
	var b strings.Builder
	for _, sec := range shellHelp {
		fmt.Fprintf(&b, "\n %s\n", StyleHeader.Render(strings.ToUpper(sec.title)))
		for _, e := range sec.entries {
			fmt.Fprintf(&b, "  %-24s %s\n", StyleGreen.Render(e.usage), Dim(e.summary))
		}
	}
	b.WriteString("\n" + Dim(shellHelpFooter))
	return RenderBox("Commands", b.String())
}
