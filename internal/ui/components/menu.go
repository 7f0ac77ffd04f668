package components

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/brainarcade/internal/ui/theme"
)

// MenuItem is one cabinet button. A nil Action makes the item inert.
type MenuItem struct {
	Label  string
	Action func() tea.Cmd
}

// MenuKeys are the bindings Menu responds to. Items can also be chosen
// directly with 1-9.
type MenuKeys struct {
	Up, Down, Choose key.Binding
}

var DefaultMenuKeys = MenuKeys{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Choose: key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("enter", "choose")),
}

// Menu is the arcade main menu: a wrapping vertical list of buttons.
type Menu struct {
	Items    []MenuItem
	Selected int
	Keys     MenuKeys
}

func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items, Keys: DefaultMenuKeys}
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	k, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}
	n := len(m.Items)

	switch {
	case key.Matches(k, m.Keys.Up):
		m.Selected = (m.Selected + n - 1) % n
	case key.Matches(k, m.Keys.Down):
		m.Selected = (m.Selected + 1) % n
	case key.Matches(k, m.Keys.Choose):
		return m, m.choose()
	default:
		if s := k.String(); len(s) == 1 && s[0] >= '1' && int(s[0]-'0') <= n {
			m.Selected = int(s[0] - '1')
			return m, m.choose()
		}
	}
	return m, nil
}

func (m Menu) choose() tea.Cmd {
	if a := m.Items[m.Selected].Action; a != nil {
		return a()
	}
	return nil
}

// menuButtonWidth fits the longest label plus the selection marker.
const menuButtonWidth = 22

// View renders the menu centred in cw columns. Compact drops the button
// borders for short terminals.
func (m Menu) View(cw int, compact bool) string {
	lines := make([]string, len(m.Items))
	for i, item := range m.Items {
		if compact {
			lines[i] = menuLine(item.Label, i == m.Selected)
		} else {
			lines[i] = ArcadeButton(item.Label, i == m.Selected, menuButtonWidth)
		}
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(strings.Join(lines, "\n"))
}

func menuLine(label string, selected bool) string {
	if selected {
		return lipgloss.NewStyle().
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			Bold(true).
			Render(" ▸ " + label + " ")
	}
	return lipgloss.NewStyle().Foreground(theme.Text).Render("   " + label)
}
