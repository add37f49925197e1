package widget

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Modal is the dialog primitive: open/closed state plus a titled card that
// wraps a body slot. It holds no knowledge of what it renders.
type Modal struct {
	title string
	open  bool
}

func NewModal(title string) Modal {
	return Modal{title: title}
}

func (m *Modal) Open() { m.open = true }

func (m *Modal) Close() { m.open = false }

func (m Modal) IsOpen() bool { return m.open }

func (m Modal) Title() string { return m.title }

// Render returns the card for body, or "" while closed.
func (m Modal) Render(body string) string {
	if !m.open {
		return ""
	}
	content := body
	if m.title != "" {
		content = modalTitleStyle.Render(m.title) + "\n\n" + body
	}
	return modalCardStyle.Render(content)
}

// Overlay draws the card for body centred over base. Without a known
// viewport the card is appended below base instead.
func (m Modal) Overlay(base, body string, width, height int) string {
	card := m.Render(body)
	if card == "" {
		return base
	}
	if width <= 0 || height <= 0 {
		if base == "" {
			return card
		}
		return base + "\n\n" + card
	}
	baseCanvas := fitCanvas(base, width, height)
	overlayCanvas := fitCanvas(lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card), width, height)
	return overlayOntoBase(baseCanvas, overlayCanvas, width, height)
}

func overlayOntoBase(base, overlay string, width, height int) string {
	baseLines := splitToLines(base, height)
	overlayLines := splitToLines(overlay, height)
	out := make([]string, height)
	for i := 0; i < height; i++ {
		baseLine := padRightANSI(baseLines[i], width)
		overlayLine := padRightANSI(overlayLines[i], width)
		start, end, has := overlaySegmentBounds(overlayLine, width)
		if !has {
			out[i] = baseLine
			continue
		}
		left := ansi.Truncate(baseLine, start, "")
		segment := ansi.Truncate(dropColumns(overlayLine, start), end-start, "")
		right := dropColumns(baseLine, end)
		out[i] = padRightANSI(left+segment+right, width)
	}
	return strings.Join(out, "\n")
}

// overlaySegmentBounds finds the visible columns of an overlay line, in cells.
func overlaySegmentBounds(line string, width int) (start, end int, ok bool) {
	plain := ansi.Strip(ansi.Truncate(line, width, ""))
	trimmed := strings.TrimRight(plain, " ")
	if trimmed == "" {
		return 0, 0, false
	}
	lead := len(trimmed) - len(strings.TrimLeft(trimmed, " "))
	start = lead
	end = ansi.StringWidth(trimmed)
	if start >= end {
		return 0, 0, false
	}
	return start, end, true
}

func fitCanvas(s string, width, height int) string {
	lines := splitToLines(s, height)
	for i := range lines {
		lines[i] = padRightANSI(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

func splitToLines(s string, height int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

func dropColumns(s string, cols int) string {
	if cols <= 0 {
		return s
	}
	truncated := ansi.Truncate(s, cols, "")
	return strings.TrimPrefix(s, truncated)
}

func padRightANSI(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
