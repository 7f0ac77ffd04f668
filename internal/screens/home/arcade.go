package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/brainarcade/internal/ui/components"
	"github.com/abhisek/brainarcade/internal/ui/theme"
)

const arcadeTitleFull = ` ██████╗ ██████╗  █████╗ ██╗███╗   ██╗
 ██╔══██╗██╔══██╗██╔══██╗██║████╗  ██║
 ██████╔╝██████╔╝███████║██║██╔██╗ ██║
 ██╔══██╗██╔══██╗██╔══██║██║██║╚██╗██║
 ██████╔╝██║  ██║██║  ██║██║██║ ╚████║
 ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝╚═╝  ╚═══╝`

const arcadeTitleCompact = "B · R · A · I · N"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar renders this week's numbers in a bordered box matching
// the content width.
func renderStatsBar(st weekStats, cw int, compact bool) string {
	playersStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	topStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	switch {
	case !st.loaded:
		stats = dimStyle.Render("loading this week...")
	case compact:
		stats = fmt.Sprintf("%s %s",
			playersStyle.Render(fmt.Sprintf("★%d", st.players)),
			topText(st, true, topStyle, dimStyle),
		)
	default:
		stats = fmt.Sprintf("%s  %s",
			playersStyle.Render(fmt.Sprintf("★ %d PLAYERS THIS WEEK", st.players)),
			topText(st, false, topStyle, dimStyle),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func topText(st weekStats, compact bool, active, dim lipgloss.Style) string {
	if st.topName == "" {
		if compact {
			return dim.Render("♛-")
		}
		return dim.Render("♛ NO CHAMPION YET")
	}
	if compact {
		return active.Render("♛" + st.topName)
	}
	return active.Render(fmt.Sprintf("♛ %s %d", strings.ToUpper(st.topName), st.topScore))
}

// renderMascotBox renders the mascot centered at content width.
func renderMascotBox(cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(components.RenderMascot(components.MascotIdle))
}
