package formatter

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "Red", 5, "Red"},
		{"exact", "Red", 3, "Red"},
		{"cut", "Magenta", 4, "Mag…"},
		{"one", "Magenta", 1, "…"},
		{"zero", "Magenta", 0, ""},
		{"runes", "Gelbgrün", 6, "Gelbg…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.width))
		})
	}
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "Red  ", PadRight("Red", 5))
	assert.Equal(t, "Mage…", PadRight("Magenta", 5))
	assert.Equal(t, 5, lipgloss.Width(PadRight("ab", 5)))
}

func TestItemIDLabel(t *testing.T) {
	id := 42
	assert.Contains(t, ItemIDLabel(&id), "#42")
	assert.Contains(t, ItemIDLabel(nil), "—")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable([]string{"ID", "NAME"}, [][]string{
		{"5", "Red"},
		{"12-A", "Amber"},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	// Second column starts at the same offset on every line.
	col := strings.Index(lines[0], "NAME")
	assert.Equal(t, col, strings.Index(lines[2], "Red"))
	assert.Equal(t, col, strings.Index(lines[3], "Amber"))
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestRenderKeyValues(t *testing.T) {
	out := RenderKeyValues([][2]string{{"Job", "J-1"}, {"Order qty", "1200"}})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, strings.Index(lines[0], "J-1"), strings.Index(lines[1], "1200"))
}

func TestNotice(t *testing.T) {
	assert.Contains(t, Notice(LevelSuccess, "Saved"), "✔ Saved")
	assert.Contains(t, Notice(LevelWarning, "Failed"), "✖ Failed")
	assert.Contains(t, Notice(LevelInfo, "Saving..."), "Saving...")
	assert.Empty(t, Notice(LevelInfo, ""))
}
