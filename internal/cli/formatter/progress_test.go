package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name   string
		pct    int
		width  int
		filled int
		label  string
	}{
		{"empty", 0, 10, 0, "  0%"},
		{"partial", 45, 10, 4, " 45%"},
		{"full", 100, 10, 10, "100%"},
		{"over 100 clamps", 150, 10, 10, "100%"},
		{"negative clamps", -5, 10, 0, "  0%"},
		{"tiny width clamps to 2", 50, 1, 1, " 50%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderProgress(tt.pct, tt.width)
			assert.Contains(t, got, tt.label)
			assert.Equal(t, tt.filled, strings.Count(got, filledBlock))
		})
	}
}

func TestRenderCompactBar(t *testing.T) {
	got := RenderCompactBar(50, 4)
	assert.NotContains(t, got, "[")
	assert.NotContains(t, got, "%")
	assert.Equal(t, 2, strings.Count(got, filledBlock))
	assert.Equal(t, 2, strings.Count(got, emptyBlock))
}
