package session

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/brainarcade/internal/leaderboard"
	"github.com/abhisek/brainarcade/internal/problemgen"
	sess "github.com/abhisek/brainarcade/internal/session"
	"github.com/abhisek/brainarcade/internal/ui/components"
	"github.com/abhisek/brainarcade/internal/ui/theme"
)

func centered(width int) lipgloss.Style {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
}

// pieceSep joins ordered pieces the way the subject reads them.
func (s *SessionScreen) pieceSep() string {
	if s.game.Subject() == leaderboard.SubjectEnglish {
		return " "
	}
	return problemgen.Arrow
}

// renderQuestionView renders the active question display.
func (s *SessionScreen) renderQuestionView(st sess.State, width, height int) string {
	q := st.Question
	if q == nil {
		return centered(width).Foreground(theme.TextDim).Render("\n\n  Loading question...")
	}

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s", s.game.Player().Name))
	if s.game.Subject() == leaderboard.SubjectMaths {
		infoLeft += lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("  level %d", st.Tier))
	}

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s %d",
			st.Index+1, st.Total,
			lipgloss.NewStyle().Foreground(theme.Success).Render("★"),
			st.Score,
		))

	infoLine := infoLeft
	if rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	limit := int(st.Limit / time.Second)
	b.WriteString("  " + components.NewTimeBar(s.game.Remaining(), limit, max(width-4, 0)).View())
	b.WriteString("\n\n")

	b.WriteString(centered(width).Foreground(theme.Text).Bold(true).Render(q.Text))
	b.WriteString("\n\n")

	var input string
	if q.Format == problemgen.FormatOrdering {
		input = s.order.View(s.pieceSep())
	} else {
		input = s.choice.View()
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, input))

	return b.String()
}

// renderFeedback renders the result of the last answer.
func (s *SessionScreen) renderFeedback(st sess.State, width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	last := st.Last
	switch {
	case last == nil:
	case last.Correct:
		b.WriteString(centered(width).Inherit(theme.Correct).Render("Correct!"))
	case last.TimedOut:
		b.WriteString(centered(width).Inherit(theme.Incorrect).Render("Time's up!"))
	default:
		b.WriteString(centered(width).Inherit(theme.Incorrect).Render("Not quite"))
	}
	b.WriteString("\n")

	if last != nil {
		if !last.Correct {
			b.WriteString(centered(width).Foreground(theme.TextDim).
				Render(fmt.Sprintf("Correct answer: %s", last.Expected)))
			b.WriteString("\n")
		}
		pts := fmt.Sprintf("%+d points", last.Points)
		color := theme.ArcadeYellow
		if last.Points < 0 {
			color = theme.Error
		}
		b.WriteString("\n")
		b.WriteString(centered(width).Foreground(color).Bold(true).Render(pts))
		b.WriteString("\n")
	}

	if s.leveledUp {
		b.WriteString(centered(width).Foreground(theme.Accent).Bold(true).Render("Level up!"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centered(width).Inherit(theme.Hint).Render("Press any key to continue..."))
	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(centered(width).Foreground(theme.Text).Bold(true).Render("Leave the game?"))
	b.WriteString("\n")
	b.WriteString(centered(width).Foreground(theme.TextDim).Render("Nothing from this game will be saved."))
	b.WriteString("\n\n")
	b.WriteString(centered(width).Foreground(theme.Error).Render("[Y] Yes, leave"))
	b.WriteString("\n")
	b.WriteString(centered(width).Foreground(theme.Primary).Render("[N] No, keep going"))
	return b.String()
}

// renderLoading renders the saving state.
func renderLoading(width, height int) string {
	return centered(width).Foreground(theme.TextDim).Render("\n\n\n  Saving your score...")
}

// renderError renders an error message.
func renderError(width, height int, errMsg string) string {
	return centered(width).Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  %s\n\n  Press any key to go home.", errMsg))
}
