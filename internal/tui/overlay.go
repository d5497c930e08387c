package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// frame is a fixed-size grid of styled lines that later layers are pasted on.
type frame []string

func newFrame(w, h int) frame {
	f := make(frame, max(h, 0))
	blank := strings.Repeat(" ", max(w, 0))
	for i := range f {
		f[i] = blank
	}
	return f
}

// put pastes s onto row y starting at column x. Cells outside the frame are
// dropped.
func (f frame) put(x, y int, s string) {
	if y < 0 || y >= len(f) || s == "" {
		return
	}
	width := ansi.StringWidth(f[y])
	if x < 0 {
		s = ansi.Cut(s, -x, ansi.StringWidth(s))
		x = 0
	}
	if x >= width {
		return
	}
	if end := x + ansi.StringWidth(s); end > width {
		s = ansi.Cut(s, 0, width-x)
	}
	f[y] = ansi.Cut(f[y], 0, x) + s + ansi.Cut(f[y], x+ansi.StringWidth(s), width)
}

// putBlock pastes a multi-line block with its top-left corner at (x, y).
func (f frame) putBlock(x, y int, block string) {
	for i, line := range strings.Split(block, "\n") {
		f.put(x, y+i, line)
	}
}

func (f frame) String() string {
	return strings.Join(f, "\n")
}

func fitAnsiWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	out := ansi.Cut(s, 0, width)
	if pad := width - lipgloss.Width(out); pad > 0 {
		out += strings.Repeat(" ", pad)
	}
	return out
}
