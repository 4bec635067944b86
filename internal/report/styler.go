// Package report prints the aggregated status report to a console.
package report

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styler colours report lines when its writer supports it. The text itself
// is never altered, so piping the output yields the plain report.
type Styler struct {
	out     io.Writer
	enabled bool

	title       lipgloss.Style
	section     lipgloss.Style
	separator   lipgloss.Style
	failure     lipgloss.Style
	unavailable lipgloss.Style
	finished    lipgloss.Style
}

// NewStyler creates a Styler writing to out. With color false every line is
// written as is.
func NewStyler(out io.Writer, color bool) *Styler {
	r := lipgloss.NewRenderer(out)
	return &Styler{
		out:         out,
		enabled:     color,
		title:       r.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		section:     r.NewStyle().Foreground(lipgloss.Color("39")),
		separator:   r.NewStyle().Foreground(lipgloss.Color("240")),
		failure:     r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		unavailable: r.NewStyle().Foreground(lipgloss.Color("244")),
		finished:    r.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
	}
}

// Style returns text with each recognised line decorated.
func (s *Styler) Style(text string) string {
	if !s.enabled {
		return text
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if style, ok := s.styleFor(line); ok {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func (s *Styler) styleFor(line string) (lipgloss.Style, bool) {
	switch {
	case line == "":
		return lipgloss.Style{}, false
	case line == "prco-check-status":
		return s.title, true
	case strings.HasPrefix(line, "server: "), strings.HasPrefix(line, "environment: "):
		return s.section, true
	case line == "---":
		return s.separator, true
	case strings.HasPrefix(line, "Server error for request id: "):
		return s.failure, true
	case strings.HasPrefix(line, "Status unavailable for: "):
		return s.unavailable, true
	case line == "Finished":
		return s.finished, true
	}
	return lipgloss.Style{}, false
}

// Print writes the styled report.
func (s *Styler) Print(text string) error {
	_, err := io.WriteString(s.out, s.Style(text))
	return err
}
