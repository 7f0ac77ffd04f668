package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/brainarcade/internal/leaderboard"
	"github.com/abhisek/brainarcade/internal/router"
	"github.com/abhisek/brainarcade/internal/screen"
	"github.com/abhisek/brainarcade/internal/screens/entry"
	"github.com/abhisek/brainarcade/internal/screens/home"
	"github.com/abhisek/brainarcade/internal/screens/welcome"
	"github.com/abhisek/brainarcade/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Deps screen.Deps

	// Play skips the menus and starts a game for this player.
	Play *entry.Prefill
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	deps   screen.Deps
	play   *entry.Prefill
	width  int
	height int
}

// newAppModel starts on the welcome splash, or on the home menu when a game
// is requested directly.
func newAppModel(opts Options) AppModel {
	deps := opts.Deps
	var root screen.Screen = welcome.New(func() screen.Screen { return home.New(deps) })
	if opts.Play != nil {
		root = home.New(deps)
	}
	return AppModel{
		router: router.New(root),
		deps:   deps,
		play:   opts.Play,
	}
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Active().Init()}
	if m.play != nil {
		game := entry.NewWith(m.deps, *m.play)
		cmds = append(cmds, router.Push(game))
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.EscCapturer); ok && c.CapturesEsc() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Back
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// status is the right-hand side of the header.
func (m AppModel) status() string {
	if m.deps.Gate == nil {
		return ""
	}
	return "week of " + leaderboard.WeekOf(m.deps.Gate.Now())
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status(), m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
