// Package summary is the result screen shown after a game.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/brainarcade/internal/router"
	"github.com/abhisek/brainarcade/internal/screen"
	"github.com/abhisek/brainarcade/internal/session"
	"github.com/abhisek/brainarcade/internal/ui/components"
	"github.com/abhisek/brainarcade/internal/ui/layout"
	"github.com/abhisek/brainarcade/internal/ui/theme"
)

// AlreadyPlayed is shown when the game was not added to the board.
const AlreadyPlayed = "You already played today! Come tomorrow"

// SummaryScreen displays the result of a finished game.
type SummaryScreen struct {
	result  session.Result
	warning string
	scroll  int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates the result screen. warning is shown when recording failed.
func New(result session.Result, warning string) *SummaryScreen {
	return &SummaryScreen{result: result, warning: warning}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Home"}}
	if len(s.result.Summary.Mistakes) > 0 {
		hints = append(hints, layout.KeyHint{Key: "↑↓", Description: "Mistakes"})
	}
	return hints
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "enter", "esc":
		return s, router.Home
	case "up", "k":
		if s.scroll > 0 {
			s.scroll--
		}
	case "down", "j":
		if s.scroll < len(s.result.Summary.Mistakes)-1 {
			s.scroll++
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.result.Summary
	center := func() lipgloss.Style { return lipgloss.NewStyle().Width(width).Align(lipgloss.Center) }

	var b strings.Builder

	variant := components.MascotCelebrating
	if s.result.Discarded || s.warning != "" {
		variant = components.MascotAlert
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.RenderSubjectMascot(variant, string(sum.Player.Subject))))
	b.WriteString("\n\n")

	b.WriteString(center().Foreground(theme.Primary).Bold(true).
		Render(fmt.Sprintf("Well played, %s!", sum.Player.Name)))
	b.WriteString("\n\n")

	switch {
	case s.result.Discarded:
		b.WriteString(center().Foreground(theme.Accent).Bold(true).Render(AlreadyPlayed))
		b.WriteString("\n")
		b.WriteString(center().Foreground(theme.TextDim).Render("This game was not added to the leaderboard."))
		b.WriteString("\n\n")
	case s.warning != "":
		b.WriteString(center().Foreground(theme.Error).Bold(true).Render(s.warning))
		b.WriteString("\n\n")
	}

	scoreLine := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).
		Render(fmt.Sprintf("★ %d POINTS", sum.Score))
	b.WriteString(center().Render(scoreLine))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Correct: %d/%d        Accuracy: %.0f%%        Avg: %.1fs",
		sum.Correct, sum.Attempted, sum.Accuracy*100, sum.AvgSeconds)
	b.WriteString(center().Foreground(theme.Text).Render(statsLine))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))

	if len(sum.Mistakes) > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Let's review")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n")

		visible := max(1, (height-24)/3)
		end := min(len(sum.Mistakes), s.scroll+visible)
		for _, m := range sum.Mistakes[s.scroll:end] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Text).Render(m.Prompt)))
			b.WriteString("\n")
			line := lipgloss.NewStyle().Foreground(theme.Error).Render("✗ "+m.Given) +
				"   " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓ "+m.Expected)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if champs := s.result.Board.Champions; len(champs) > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("This week's champions")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n")
		for i, c := range champs {
			style := lipgloss.NewStyle().Foreground(theme.Text)
			if c.Name == sum.Player.Name && c.Grade == sum.Player.Grade {
				style = style.Foreground(theme.ArcadeCyan).Bold(true)
			}
			line := fmt.Sprintf("♛ %d. %-16s class %d  %5d", i+1, c.Name, c.Grade, c.Score)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
			b.WriteString("\n")
		}
	}

	return b.String()
}
