package widget

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestModalRenderClosed(t *testing.T) {
	m := NewModal("Výběr výdejního místa")
	require.False(t, m.IsOpen())
	require.Empty(t, m.Render("body"))
	require.Equal(t, "base", m.Overlay("base", "body", 40, 10))
}

func TestModalRenderOpen(t *testing.T) {
	m := NewModal("Výběr výdejního místa")
	m.Open()
	out := ansi.Strip(m.Render("body"))
	require.Contains(t, out, "Výběr výdejního místa")
	require.Contains(t, out, "body")

	m.Close()
	require.Empty(t, m.Render("body"))
}

func TestModalOverlayWithoutViewport(t *testing.T) {
	m := NewModal("")
	m.Open()
	out := m.Overlay("base", "body", 0, 0)
	require.True(t, strings.HasPrefix(out, "base\n\n"))
	require.Contains(t, out, "body")
}

func TestModalOverlayKeepsBaseOutsideCard(t *testing.T) {
	m := NewModal("T")
	m.Open()
	base := strings.Repeat(strings.Repeat("x", 40)+"\n", 11) + strings.Repeat("x", 40)
	out := m.Overlay(base, "hi", 40, 12)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 12)
	require.Equal(t, strings.Repeat("x", 40), ansi.Strip(lines[0]))
	require.Equal(t, strings.Repeat("x", 40), ansi.Strip(lines[11]))
	for _, l := range lines {
		require.Equal(t, 40, ansi.StringWidth(l))
	}
	require.Contains(t, ansi.Strip(out), "hi")
}

func TestPadRightANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{"shorter", "hi", 5, "hi   "},
		{"exact", "hello", 5, "hello"},
		{"longer", "hello world", 5, "hello"},
		{"empty_input", "", 3, "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, padRightANSI(tt.input, tt.width))
		})
	}
}

func TestSplitToLines(t *testing.T) {
	require.Equal(t, []string{"a", "b", ""}, splitToLines("a\nb", 3))
	require.Equal(t, []string{"a"}, splitToLines("a\nb\nc", 1))
}
