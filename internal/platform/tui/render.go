package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/ringshot/internal/core"
)

// cellStyles maps entity colours to terminal styles. ColorDefault has no
// entry and is written without escape codes.
var cellStyles = map[core.Color]lipgloss.Style{
	core.ColorRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorCyan:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorWhite:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorGray:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen paints a Screen as styled rows joined with newlines.
func RenderScreen(s *core.Screen) string {
	rows := make([]string, s.Height())
	for y := range rows {
		rows[y] = renderRow(s, y)
	}
	return strings.Join(rows, "\n")
}

// renderRow styles each run of same-coloured cells once, so a row costs one
// escape sequence per colour change rather than per cell.
func renderRow(s *core.Screen, y int) string {
	var (
		sb  strings.Builder
		run []rune
		cur = core.ColorDefault
	)

	flush := func() {
		if len(run) == 0 {
			return
		}
		if style, ok := cellStyles[cur]; ok {
			sb.WriteString(style.Render(string(run)))
		} else {
			sb.WriteString(string(run))
		}
		run = run[:0]
	}

	for x := range s.Width() {
		c := s.GetCell(x, y)
		if c.Color != cur {
			flush()
			cur = c.Color
		}
		run = append(run, c.Rune)
	}
	flush()

	return sb.String()
}
