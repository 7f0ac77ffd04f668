// Package scoreboard shows the weekly leaderboard for each subject and the
// overall ranking.
package scoreboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/brainarcade/internal/leaderboard"
	"github.com/abhisek/brainarcade/internal/router"
	"github.com/abhisek/brainarcade/internal/screen"
	"github.com/abhisek/brainarcade/internal/ui/layout"
	"github.com/abhisek/brainarcade/internal/ui/theme"
)

const weekLayout = "2006-01-02"

type boardLoadedMsg struct {
	subject leaderboard.Subject
	week    string
	overall bool
	rows    []leaderboard.Record
	champs  int
	err     error
}

// ScoreboardScreen lists leaders for one subject and week at a time.
type ScoreboardScreen struct {
	gate     *leaderboard.Gate
	subject  int
	week     string
	thisWeek string
	overall  bool

	rows     []leaderboard.Record
	champs   int
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*ScoreboardScreen)(nil)
var _ screen.KeyHintProvider = (*ScoreboardScreen)(nil)

// New opens the current week's board for subject.
func New(gate *leaderboard.Gate, subject leaderboard.Subject) *ScoreboardScreen {
	s := &ScoreboardScreen{gate: gate}
	for i, subj := range leaderboard.Subjects {
		if subj == subject {
			s.subject = i
		}
	}
	if gate != nil {
		s.thisWeek = leaderboard.WeekOf(gate.Now())
		s.week = s.thisWeek
	}
	return s
}

func (s *ScoreboardScreen) Init() tea.Cmd {
	return s.load()
}

func (s *ScoreboardScreen) Title() string {
	return "Leaderboard"
}

func (s *ScoreboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Subject"},
		{Key: "←→", Description: "Week"},
		{Key: "O", Description: "Overall"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ScoreboardScreen) current() leaderboard.Subject {
	return leaderboard.Subjects[s.subject]
}

func (s *ScoreboardScreen) load() tea.Cmd {
	gate, subj, week, overall := s.gate, s.current(), s.week, s.overall
	if gate == nil {
		return nil
	}
	s.loaded = false
	return func() tea.Msg {
		ctx := context.Background()
		if overall {
			rows, err := gate.Overall(ctx)
			return boardLoadedMsg{overall: true, rows: rows, err: err}
		}
		b, err := gate.Board(ctx, subj, week)
		return boardLoadedMsg{
			subject: subj, week: week,
			rows: b.Leaders, champs: len(b.Champions), err: err,
		}
	}
}

func (s *ScoreboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case boardLoadedMsg:
		// Drop answers to requests the player has already moved past.
		if msg.overall != s.overall || (!msg.overall && (msg.subject != s.current() || msg.week != s.week)) {
			return s, nil
		}
		s.loaded = true
		s.errMsg = ""
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			s.rows = nil
			return s, nil
		}
		s.rows = msg.rows
		s.champs = msg.champs
		s.selected = 0
		return s, nil

	case tea.KeyPressMsg:
		n := len(leaderboard.Subjects)
		switch msg.String() {
		case "esc":
			return s, router.Back
		case "tab":
			s.overall = false
			s.subject = (s.subject + 1) % n
			return s, s.load()
		case "shift+tab":
			s.overall = false
			s.subject = (s.subject + n - 1) % n
			return s, s.load()
		case "o", "O":
			s.overall = !s.overall
			return s, s.load()
		case "left", "h":
			if s.overall {
				return s, nil
			}
			s.week = shiftWeek(s.week, -1)
			return s, s.load()
		case "right", "l":
			if s.overall || s.week >= s.thisWeek {
				return s, nil
			}
			s.week = shiftWeek(s.week, 1)
			return s, s.load()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.rows)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

// shiftWeek moves a week start date by n weeks.
func shiftWeek(week string, n int) string {
	t, err := time.ParseInLocation(weekLayout, week, time.Local)
	if err != nil {
		return week
	}
	return t.AddDate(0, 0, 7*n).Format(weekLayout)
}

func (s *ScoreboardScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.renderTabs(width))
	b.WriteString("\n\n")

	switch {
	case s.errMsg != "":
		b.WriteString(center.Foreground(theme.Error).Render("Error: " + s.errMsg))
		return b.String()
	case !s.loaded:
		b.WriteString(center.Foreground(theme.TextDim).Render("Loading leaderboard..."))
		return b.String()
	case len(s.rows) == 0:
		b.WriteString(center.Foreground(theme.TextDim).Italic(true).Render("No games yet this week. Be the first!"))
		return b.String()
	}

	header := fmt.Sprintf("  %-4s %-18s %-6s %6s %9s %7s", "#", "NAME", "CLASS", "SCORE", "CORRECT", "AVG")
	if s.overall {
		header += fmt.Sprintf(" %-18s", "GAME")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(header)))
	b.WriteString("\n")

	visible := max(1, height-8)
	start := 0
	if s.selected >= visible {
		start = s.selected - visible + 1
	}
	end := min(len(s.rows), start+visible)

	for i := start; i < end; i++ {
		r := s.rows[i]
		prefix := "  "
		if i == s.selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%-4d %-18s %-6d %6d %4d/%-4d %6.1fs",
			prefix, i+1, truncate(r.Name, 18), r.Grade, r.Score, r.Correct, r.Attempted, r.AvgSeconds())
		if s.overall {
			line += fmt.Sprintf(" %-18s", r.Subject.Label())
		}

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == s.selected:
			style = style.Foreground(theme.Primary).Bold(true)
		case !s.overall && i < s.champs:
			style = style.Foreground(theme.ArcadeYellow).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

// renderTabs draws the subject tabs and the week being shown.
func (s *ScoreboardScreen) renderTabs(width int) string {
	var tabs []string
	for i, subj := range leaderboard.Subjects {
		tabs = append(tabs, theme.Tab(subj.Label(), !s.overall && i == s.subject, theme.SubjectAccent(string(subj))))
	}
	tabs = append(tabs, theme.Tab("Overall", s.overall, theme.Primary))

	caption := "week of " + s.week
	if s.overall {
		caption = "all weeks"
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.JoinHorizontal(lipgloss.Center, tabs...)) + "\n" +
		lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(caption))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
