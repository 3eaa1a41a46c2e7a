package ui

import (
	"github.com/charmbracelet/lipgloss"

	"monthcal/internal/calendar"
	"monthcal/internal/config"
)

// Styles maps cell tags to lipgloss styles.
type Styles struct {
	Frame    lipgloss.Style
	Button   lipgloss.Style
	Title    lipgloss.Style
	Weekday  lipgloss.Style
	Day      lipgloss.Style
	Overflow lipgloss.Style
	Status   lipgloss.Style
	Note     lipgloss.Style

	today     lipgloss.Color
	highlight lipgloss.Color
	marked    lipgloss.Color
}

func NewStyles(t config.Theme) Styles {
	cell := lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Right)
	return Styles{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, framePadX),
		Button:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Header)),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Header)),
		Weekday:  cell.Foreground(lipgloss.Color(t.Header)),
		Day:      cell,
		Overflow: cell.Foreground(lipgloss.Color(t.Overflow)),
		Status:   lipgloss.NewStyle().Faint(true),
		Note:     lipgloss.NewStyle().Foreground(lipgloss.Color(t.Marked)),

		today:     lipgloss.Color(t.Today),
		highlight: lipgloss.Color(t.Highlight),
		marked:    lipgloss.Color(t.Marked),
	}
}

// CellStyle resolves the style of a cell from its tags. Highlight wins
// over today, today over marked.
func (s Styles) CellStyle(c calendar.Cell) lipgloss.Style {
	st := s.Day
	if c.Kind != calendar.KindCurrent {
		st = s.Overflow
	}
	if c.Marked {
		st = st.Foreground(s.marked).Underline(true)
	}
	if c.Today {
		st = st.Bold(true).Foreground(s.today)
	}
	if c.Highlighted {
		st = st.Background(s.highlight).Foreground(lipgloss.Color("0"))
	}
	return st
}
