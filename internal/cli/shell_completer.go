package cli

import (
	"strings"

	"github.com/alexanderramin/planeasy/internal/domain"
)

// allCommandNames returns the command bar vocabulary for autocomplete.
func allCommandNames() []string {
	return []string{
		"today", "back", "list", "stats", "categories",
		"add", "edit", "done", "rm", "show",
		"export", "import", "reminders",
		"help", "exit", "quit",
	}
}

// argumentSuggestions returns completions for the first argument of cmd.
// Plan IDs are not completed; they are random and long.
func argumentSuggestions(cmd string) []string {
	switch cmd {
	case "list":
		return append([]string{domain.CategoryAll}, domain.KnownCategories...)
	case "reminders":
		return []string{"list", "deliver"}
	case "export":
		return []string{"--format", "--out"}
	}
	return nil
}

// filterSuggestions returns items from pool that start with prefix (case-insensitive).
func filterSuggestions(pool []string, prefix string) []string {
	if prefix == "" {
		return pool
	}
	lp := strings.ToLower(prefix)
	var result []string
	for _, s := range pool {
		if strings.HasPrefix(strings.ToLower(s), lp) {
			result = append(result, s)
		}
	}
	return result
}

// completeLine returns whole-line suggestions for the command bar text. The
// text input matches suggestions against its full value, so argument
// completions carry the command word in front.
func completeLine(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	words := strings.Fields(text)
	open := !strings.HasSuffix(text, " ")

	switch {
	case len(words) == 1 && open:
		return filterSuggestions(allCommandNames(), words[0])
	case len(words) == 1, len(words) == 2 && open:
		partial := ""
		if len(words) == 2 {
			partial = words[1]
		}
		args := filterSuggestions(argumentSuggestions(strings.ToLower(words[0])), partial)
		lines := make([]string, len(args))
		for i, a := range args {
			lines[i] = words[0] + " " + a
		}
		return lines
	}
	return nil
}
