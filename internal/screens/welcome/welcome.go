package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/brainarcade/internal/leaderboard"
	"github.com/abhisek/brainarcade/internal/router"
	"github.com/abhisek/brainarcade/internal/screen"
	"github.com/abhisek/brainarcade/internal/ui/components"
	"github.com/abhisek/brainarcade/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 4500 * time.Millisecond
)

// badgeTicks is how long the mascot shows each game's badge.
const badgeTicks = 6

var sparkleFrames = []string{"★", "✦"}

type tickMsg time.Time

// WelcomeScreen shows a splash animation. Any key moves on to the screen
// built by next.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	return router.Replace(w.next())
}

// badgeSubject cycles through the games so the splash previews all four.
func (w *WelcomeScreen) badgeSubject() leaderboard.Subject {
	return leaderboard.Subjects[(w.tickCount/badgeTicks)%len(leaderboard.Subjects)]
}

func (w *WelcomeScreen) View(width, height int) string {
	mascot := components.RenderSubjectMascot(components.MascotIdle, string(w.badgeSubject()))
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 2)

	sections := []string{frame.Render(mascot)}
	if w.elapsed >= phase1End {
		sections[0] = sparkle(sections[0], sparkleFrames[w.tickCount%len(sparkleFrames)])
	}
	if w.elapsed >= phase2End {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Play, learn and top the weekly board!"),
			lipgloss.NewStyle().Foreground(theme.SubjectAccent(string(w.badgeSubject()))).Render("now showing: "+w.badgeSubject().Label()),
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press Enter to continue"),
		)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}

// sparkle puts twinkling stars beside the first, middle and last rows.
func sparkle(block, star string) string {
	a := lipgloss.NewStyle().Foreground(theme.Accent).Render(star)
	b := lipgloss.NewStyle().Foreground(theme.Secondary).Render(star)
	lines := strings.Split(block, "\n")
	blank := strings.Repeat(" ", lipgloss.Width(a))
	for i, line := range lines {
		switch i {
		case 0, len(lines) - 1:
			lines[i] = a + "  " + line + "  " + b
		case len(lines) / 2:
			lines[i] = b + "  " + line + "  " + a
		default:
			lines[i] = blank + "  " + line + "  " + blank
		}
	}
	return strings.Join(lines, "\n")
}
