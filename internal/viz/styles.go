package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title, label, value, selected, hint lipgloss.Style
	high, mid, low                      lipgloss.Style
	panel                               lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		label:    lipgloss.NewStyle().Foreground(t.Muted),
		value:    lipgloss.NewStyle().Foreground(t.Text),
		selected: lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		hint:     lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		high:     lipgloss.NewStyle().Foreground(t.High),
		mid:      lipgloss.NewStyle().Foreground(t.Mid),
		low:      lipgloss.NewStyle().Foreground(t.Low),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
	}
}

// Sparkline renders values scaled between their min and max, one rune per
// sample, keeping the last width samples.
func (s styles) Sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var out strings.Builder
	for _, v := range values {
		norm := (v - lo) / span
		idx := min(max(int(norm*float64(len(chars)-1)), 0), len(chars)-1)
		c := string(chars[idx])
		switch {
		case norm > 0.7:
			out.WriteString(s.high.Render(c))
		case norm > 0.3:
			out.WriteString(s.mid.Render(c))
		default:
			out.WriteString(s.low.Render(c))
		}
	}
	return out.String()
}

func (s styles) Separator(width int) string {
	mid := width / 2
	if mid < 3 {
		return s.label.Render(strings.Repeat("─", width))
	}
	return s.label.Render(strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", max(width-mid-3, 0)))
}
