package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Styler formats CLI output. Colors are only used when writing to a
// terminal.
type Styler struct {
	color bool

	title lipgloss.Style
	key   lipgloss.Style
	dim   lipgloss.Style
	on    lipgloss.Style
	off   lipgloss.Style
	strut lipgloss.Style
}

// NewStyler returns a styler for w.
func NewStyler(w io.Writer) *Styler {
	f, ok := w.(*os.File)
	return newStyler(ok && term.IsTerminal(int(f.Fd())))
}

func newStyler(color bool) *Styler {
	s := &Styler{color: color}
	if !color {
		return s
	}
	s.title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("62")).
		Padding(0, 1)
	s.key = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	s.dim = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	s.on = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	s.off = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	s.strut = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	return s
}

func (s *Styler) render(style lipgloss.Style, text string) string {
	if !s.color {
		return text
	}
	return style.Render(text)
}

// Title renders a section heading.
func (s *Styler) Title(text string) string { return s.render(s.title, text) }

// Dim renders secondary text.
func (s *Styler) Dim(text string) string { return s.render(s.dim, text) }

// KV renders an aligned "key: value" line.
func (s *Styler) KV(key string, value any) string {
	label := fmt.Sprintf("%-15s", key+":")
	return s.render(s.key, label) + " " + fmt.Sprint(value)
}

// Flag renders a boolean as a colored on/off marker.
func (s *Styler) Flag(enabled bool) string {
	if enabled {
		return s.render(s.on, "● on")
	}
	return s.render(s.off, "○ off")
}

// Canvas colors the reserved cells of a rendered preview.
func (s *Styler) Canvas(lines []string) string {
	if !s.color {
		return strings.Join(lines, "\n")
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.ReplaceAll(line, string(reservedCell), s.strut.Render(string(reservedCell)))
	}
	return strings.Join(out, "\n")
}
