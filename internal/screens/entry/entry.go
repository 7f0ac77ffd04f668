// Package entry is the player sign-in screen: name, grade and subject.
package entry

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/brainarcade/internal/leaderboard"
	"github.com/abhisek/brainarcade/internal/router"
	"github.com/abhisek/brainarcade/internal/screen"
	sessionscreen "github.com/abhisek/brainarcade/internal/screens/session"
	"github.com/abhisek/brainarcade/internal/session"
	"github.com/abhisek/brainarcade/internal/ui/components"
	"github.com/abhisek/brainarcade/internal/ui/layout"
	"github.com/abhisek/brainarcade/internal/ui/theme"
)

type field int

const (
	fieldName field = iota
	fieldGrade
	fieldSubject
	fieldCount
)

// Prefill seeds the form. With Autostart the game starts as soon as the
// screen opens.
type Prefill struct {
	Name      string
	Grade     int
	Subject   leaderboard.Subject
	Autostart bool
}

type playersLoadedMsg struct {
	subject leaderboard.Subject
	names   []string
}

type startedMsg struct {
	sess *session.Session
	err  error
}

// EntryScreen collects who is playing before a game starts.
type EntryScreen struct {
	deps      screen.Deps
	name      components.TextInput
	grade     int
	subject   int
	focus     field
	starting  bool
	autostart bool
	errMsg    string
}

var _ screen.Screen = (*EntryScreen)(nil)
var _ screen.KeyHintProvider = (*EntryScreen)(nil)

func New(deps screen.Deps) *EntryScreen {
	return NewWith(deps, Prefill{})
}

// NewWith creates the screen with the given values filled in.
func NewWith(deps screen.Deps, p Prefill) *EntryScreen {
	e := &EntryScreen{
		deps:      deps,
		name:      components.NewTextInput("Your name", 40),
		grade:     leaderboard.MinGrade,
		autostart: p.Autostart,
	}
	if p.Name != "" {
		e.name.SetValue(p.Name)
	}
	if p.Grade >= leaderboard.MinGrade && p.Grade <= leaderboard.MaxGrade {
		e.grade = p.Grade
	}
	for i, s := range leaderboard.Subjects {
		if s == p.Subject {
			e.subject = i
		}
	}
	return e
}

func (e *EntryScreen) Title() string {
	return "Who's Playing?"
}

func (e *EntryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "←→", Description: "Change"},
	}
	if e.focus == fieldName {
		hints = []layout.KeyHint{
			{Key: "↑↓", Description: "Field"},
			{Key: "Tab", Description: "Complete"},
		}
	}
	return append(hints,
		layout.KeyHint{Key: "Enter", Description: "Play"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

func (e *EntryScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{e.name.Init(), e.loadPlayers()}
	if e.autostart {
		e.starting = true
		cmds = append(cmds, e.start())
	}
	return tea.Batch(cmds...)
}

func (e *EntryScreen) currentSubject() leaderboard.Subject {
	return leaderboard.Subjects[e.subject]
}

// loadPlayers fetches this week's names for the selected subject.
func (e *EntryScreen) loadPlayers() tea.Cmd {
	gate, subj := e.deps.Gate, e.currentSubject()
	if gate == nil {
		return nil
	}
	return func() tea.Msg {
		b, err := gate.CurrentBoard(context.Background(), subj)
		if err != nil {
			return playersLoadedMsg{subject: subj}
		}
		return playersLoadedMsg{subject: subj, names: b.Players}
	}
}

// start builds and starts a session off the update loop; Prepare may wait
// on a question source.
func (e *EntryScreen) start() tea.Cmd {
	deps, subj := e.deps, e.currentSubject()
	name, grade := e.name.Value(), e.grade
	return func() tea.Msg {
		ctx := context.Background()
		sess, err := deps.NewSession(ctx, subj)
		if err != nil {
			return startedMsg{err: err}
		}
		if err := sess.Start(ctx, name, grade); err != nil {
			return startedMsg{err: err}
		}
		return startedMsg{sess: sess}
	}
}

func (e *EntryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case playersLoadedMsg:
		if msg.subject == e.currentSubject() {
			e.name.SetSuggestions(msg.names)
		}
		return e, nil

	case startedMsg:
		e.starting = false
		if msg.err != nil {
			e.errMsg = session.UserMessage(msg.err)
			if e.deps.Logger != nil {
				e.deps.Logger.Warn("game did not start", "subject", e.currentSubject(), "error", msg.err)
			}
			return e, nil
		}
		game := sessionscreen.New(msg.sess)
		return e, router.Replace(game)

	case tea.KeyPressMsg:
		return e.handleKey(msg)
	}

	if e.focus == fieldName {
		var cmd tea.Cmd
		e.name, cmd = e.name.Update(msg)
		return e, cmd
	}
	return e, nil
}

func (e *EntryScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if e.starting {
		return e, nil
	}
	switch msg.String() {
	case "enter":
		e.errMsg = ""
		e.starting = true
		return e, e.start()
	case "up":
		e.focus = (e.focus + fieldCount - 1) % fieldCount
		return e, nil
	case "down":
		e.focus = (e.focus + 1) % fieldCount
		return e, nil
	}

	switch e.focus {
	case fieldName:
		var cmd tea.Cmd
		e.name, cmd = e.name.Update(msg)
		return e, cmd
	case fieldGrade:
		switch msg.String() {
		case "left", "-":
			e.grade = max(leaderboard.MinGrade, e.grade-1)
		case "right", "+":
			e.grade = min(leaderboard.MaxGrade, e.grade+1)
		default:
			if k := msg.String(); len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
				e.grade = int(k[0] - '0')
			}
		}
	case fieldSubject:
		n := len(leaderboard.Subjects)
		switch msg.String() {
		case "left":
			e.subject = (e.subject + n - 1) % n
			return e, e.loadPlayers()
		case "right":
			e.subject = (e.subject + 1) % n
			return e, e.loadPlayers()
		}
	}
	return e, nil
}

func (e *EntryScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	label := func(f field, text string) string {
		style := lipgloss.NewStyle().Foreground(theme.TextDim).Width(10)
		if e.focus == f {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		return style.Render(text)
	}
	picker := func(f field, value string) string {
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if e.focus == f {
			style = style.Foreground(theme.ArcadeYellow).Bold(true)
			value = "◂ " + value + " ▸"
		}
		return style.Render(value)
	}

	rows := []string{
		label(fieldName, "Name") + e.name.View(),
		"",
		label(fieldGrade, "Class") + picker(fieldGrade, fmt.Sprintf("%d", e.grade)),
		"",
		label(fieldSubject, "Game") + picker(fieldSubject, e.currentSubject().Label()),
	}
	form := components.ArcadeCard(strings.Join(rows, "\n"), cw)

	var status string
	switch {
	case e.starting:
		status = lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("Getting your questions ready...")
	case e.errMsg != "":
		status = lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(e.errMsg)
	default:
		status = components.ArcadeButton("START", true, 18)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, form, "", status)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
