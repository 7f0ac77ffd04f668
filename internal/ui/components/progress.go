package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/brainarcade/internal/ui/theme"
)

// TimeBar is the countdown strip above a question. It drains from full to
// empty and turns red once Remaining falls to Urgent seconds.
type TimeBar struct {
	Remaining int
	Limit     int
	Urgent    int
	Width     int
}

func NewTimeBar(remaining, limit, width int) TimeBar {
	return TimeBar{Remaining: remaining, Limit: limit, Urgent: 5, Width: width}
}

// Fraction is the share of the limit left, in [0, 1].
func (t TimeBar) Fraction() float64 {
	if t.Limit <= 0 {
		return 0
	}
	return min(max(float64(t.Remaining)/float64(t.Limit), 0), 1)
}

func (t TimeBar) View() string {
	fill := theme.Secondary
	if t.Remaining <= t.Urgent {
		fill = theme.Error
	}

	clock := fmt.Sprintf(" ⏱ 0:%02d", max(t.Remaining, 0))
	barWidth := max(t.Width-lipgloss.Width(clock), 4)
	filled := int(float64(barWidth) * t.Fraction())

	return lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled)) +
		lipgloss.NewStyle().Foreground(fill).Bold(t.Remaining <= t.Urgent).Render(clock)
}
