package cli

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

const maxHistoryLines = 500

// DefaultHistoryPath returns ~/.planeasy/shell_history, or "" when the
// home directory is unknown.
func DefaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".planeasy", "shell_history")
}

// commandHistory is the command bar's recall buffer, optionally backed by a
// file. File errors are swallowed and leave the buffer in memory only.
type commandHistory struct {
	path    string
	entries []string
	// cursor is len(entries) when no entry is being recalled.
	cursor int
}

func openHistory(path string) *commandHistory {
	h := &commandHistory{path: path, entries: readHistoryFile(path)}
	h.cursor = len(h.entries)
	return h
}

// record stores line as the newest entry and resets recall. Repeating the
// previous line does not add a second copy.
func (h *commandHistory) record(line string) {
	line = strings.TrimSpace(line)
	h.cursor = len(h.entries)
	if line == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return
	}
	h.entries = append(h.entries, line)
	h.cursor = len(h.entries)
	appendHistoryFile(h.path, line)
}

// prev steps to the next older entry. ok is false at the oldest one.
func (h *commandHistory) prev() (line string, ok bool) {
	if h.cursor == 0 {
		return "", false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// next steps toward the newest entry and yields "" once past it.
func (h *commandHistory) next() string {
	if h.cursor >= len(h.entries)-1 {
		h.cursor = len(h.entries)
		return ""
	}
	h.cursor++
	return h.entries[h.cursor]
}

func readHistoryFile(path string) []string {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if over := len(lines) - maxHistoryLines; over > 0 {
		lines = lines[over:]
	}
	return lines
}

func appendHistoryFile(path, line string) {
	if path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = f.WriteString(line + "\n")
}
