package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/brainarcade/internal/ui/theme"
)

// Cabinet geometry: every card and button on a screen shares one inner
// width so their borders line up.
const (
	cabinetChrome  = 6 // double border plus padding
	cabinetMinWide = 20
	cabinetMaxWide = 60
)

var (
	cabinetStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(theme.Primary).
			Align(lipgloss.Center, lipgloss.Center)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Align(lipgloss.Center).
			Padding(1, 2)

	buttonStyle = lipgloss.NewStyle().
			Align(lipgloss.Center).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

// ContentWidth is the shared inner width for a frame width columns wide.
func ContentWidth(width int) int {
	return min(max(width-cabinetChrome, cabinetMinWide), cabinetMaxWide)
}

// CabinetFrame centres content inside the double-bordered cabinet.
func CabinetFrame(content string, width, height int) string {
	return cabinetStyle.Width(width - 2).Height(height - 2).Render(content)
}

// ArcadeCard boxes content at content width cw.
func ArcadeCard(content string, cw int) string {
	return cardStyle.Width(cw - 2).Render(content)
}

// ArcadeButton is a bordered button; the selected one is lit yellow.
func ArcadeButton(label string, selected bool, width int) string {
	s := buttonStyle.Width(width)
	if !selected {
		return s.Foreground(theme.Text).BorderForeground(theme.Border).Render(label)
	}
	return s.Bold(true).
		Foreground(theme.BgDark).
		Background(theme.ArcadeYellow).
		BorderForeground(theme.ArcadeYellow).
		Render("▸ " + label)
}
