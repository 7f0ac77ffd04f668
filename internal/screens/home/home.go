package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/brainarcade/internal/leaderboard"
	"github.com/abhisek/brainarcade/internal/router"
	"github.com/abhisek/brainarcade/internal/screen"
	"github.com/abhisek/brainarcade/internal/screens/entry"
	"github.com/abhisek/brainarcade/internal/screens/scoreboard"
	"github.com/abhisek/brainarcade/internal/screens/teacher"
	"github.com/abhisek/brainarcade/internal/ui/components"
	"github.com/abhisek/brainarcade/internal/ui/layout"
)

// weekStats is the summary line shown above the menu.
type weekStats struct {
	loaded   bool
	players  int
	topName  string
	topScore int
}

type statsLoadedMsg struct {
	stats weekStats
}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps  screen.Deps
	menu  components.Menu
	stats weekStats
}

var (
	_ screen.Screen          = (*HomeScreen)(nil)
	_ screen.KeyHintProvider = (*HomeScreen)(nil)
)

// New creates the home screen.
func New(deps screen.Deps) *HomeScreen {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd { return router.Push(build()) }
	}

	items := []components.MenuItem{
		{Label: "PLAY", Action: push(func() screen.Screen { return entry.New(deps) })},
		{Label: "LEADERBOARD", Action: push(func() screen.Screen {
			return scoreboard.New(deps.Gate, leaderboard.SubjectMaths)
		})},
		{Label: "TEACHER SETTINGS", Action: push(func() screen.Screen { return teacher.New(deps.Settings) })},
		{Label: "EXIT GAME", Action: func() tea.Cmd { return tea.Quit }},
	}

	return &HomeScreen{deps: deps, menu: components.NewMenu(items)}
}

func (h *HomeScreen) Init() tea.Cmd {
	gate := h.deps.Gate
	if gate == nil {
		return nil
	}
	return func() tea.Msg {
		return statsLoadedMsg{stats: loadWeekStats(context.Background(), gate)}
	}
}

// loadWeekStats counts this week's players and finds the top score across
// all subjects. Unreadable boards count as empty.
func loadWeekStats(ctx context.Context, gate *leaderboard.Gate) weekStats {
	st := weekStats{loaded: true}
	for _, subj := range leaderboard.Subjects {
		b, err := gate.CurrentBoard(ctx, subj)
		if err != nil {
			continue
		}
		st.players += len(b.Players)
		if len(b.Champions) > 0 && (st.topName == "" || b.Champions[0].Score > st.topScore) {
			st.topName = b.Champions[0].Name
			st.topScore = b.Champions[0].Score
		}
	}
	return st
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(statsLoadedMsg); ok {
		h.stats = m.stats
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header, footer and frame gaps
	termHeight := height + 8
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(cw))
	}
	sections = append(sections, renderStatsBar(h.stats, cw, compact))

	sections = append(sections, h.menu.View(cw, termHeight < 24))

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	k := h.menu.Keys
	return append(layout.Hints(k.Up, k.Down, k.Choose),
		layout.KeyHint{Key: fmt.Sprintf("1-%d", len(h.menu.Items)), Description: "jump"},
		layout.KeyHint{Key: "Ctrl+C", Description: "quit"})
}

func (h *HomeScreen) Title() string {
	return "Home"
}
