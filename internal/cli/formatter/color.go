package formatter

import (
	"strings"

	"github.com/alexanderramin/planeasy/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Palette. Each color has a light and a dark terminal variant.
var (
	ColorGreen  = lipgloss.AdaptiveColor{Light: "#2f7d32", Dark: "#a3be8c"}
	ColorYellow = lipgloss.AdaptiveColor{Light: "#9a6700", Dark: "#ebcb8b"}
	ColorRed    = lipgloss.AdaptiveColor{Light: "#b3261e", Dark: "#bf616a"}
	ColorBlue   = lipgloss.AdaptiveColor{Light: "#1f5f99", Dark: "#81a1c1"}
	ColorPurple = lipgloss.AdaptiveColor{Light: "#7a3e9d", Dark: "#b48ead"}
	ColorDim    = lipgloss.AdaptiveColor{Light: "#6e7781", Dark: "#7b8394"}
	ColorFg     = lipgloss.AdaptiveColor{Light: "#1f2328", Dark: "#e5e9f0"}
	ColorHeader = lipgloss.AdaptiveColor{Light: "#bc4c00", Dark: "#d08770"}
)

func fg(c lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

var (
	StyleGreen  = fg(ColorGreen)
	StyleYellow = fg(ColorYellow)
	StyleRed    = fg(ColorRed)
	StyleBlue   = fg(ColorBlue)
	StylePurple = fg(ColorPurple)
	StyleDim    = fg(ColorDim)
	StyleFg     = fg(ColorFg)
	StyleHeader = fg(ColorHeader).Bold(true)
	StyleBold   = fg(ColorFg).Bold(true)
)

// CategoryStyle returns the style used to tint a category label.
// Unknown categories render in the foreground color.
func CategoryStyle(category string) lipgloss.Style {
	switch category {
	case domain.CategoryStudy:
		return StylePurple
	case domain.CategoryWork:
		return StyleRed
	case domain.CategoryPersonal:
		return StyleBlue
	case "", domain.CategoryUncategorized:
		return StyleDim
	default:
		return StyleFg
	}
}

// CategoryBadge renders a category label in its color.
func CategoryBadge(category string) string {
	if category == "" {
		return StyleDim.Render(domain.CategoryUncategorized)
	}
	return CategoryStyle(category).Render(category)
}

// CompletionMark returns the check glyph for a plan's completion state.
func CompletionMark(completed bool) string {
	if completed {
		return StyleGreen.Render("✓")
	}
	return StyleDim.Render("○")
}

// Header renders text upper-cased over a rule of the same width.
func Header(text string) string {
	title := strings.ToUpper(text)
	return StyleHeader.Render(title) + "\n" + Dim(strings.Repeat("─", lipgloss.Width(title)))
}

func Dim(text string) string  { return StyleDim.Render(text) }
func Bold(text string) string { return StyleBold.Render(text) }
