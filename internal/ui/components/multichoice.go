package components

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/brainarcade/internal/ui/theme"
)

// MultiChoice answers a question with one of up to nine options. It shares
// MenuKeys with Menu but does not wrap: the cursor stops at either end.
type MultiChoice struct {
	Options   []string
	Selected  int
	Submitted bool
	Keys      MenuKeys
}

func NewMultiChoice(options []string) MultiChoice {
	keys := DefaultMenuKeys
	keys.Choose.SetHelp("enter", "submit")
	return MultiChoice{Options: options, Keys: keys}
}

func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	k, ok := msg.(tea.KeyPressMsg)
	if !ok || m.Submitted || len(m.Options) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(k, m.Keys.Up):
		m.Selected = max(m.Selected-1, 0)
	case key.Matches(k, m.Keys.Down):
		m.Selected = min(m.Selected+1, len(m.Options)-1)
	case key.Matches(k, m.Keys.Choose):
		m.Submitted = true
	default:
		if s := k.String(); len(s) == 1 && s[0] >= '1' && int(s[0]-'0') <= len(m.Options) {
			m.Selected = int(s[0] - '1')
			m.Submitted = true
		}
	}
	return m, nil
}

// Choice is the submitted option, or "" until Enter or a digit is pressed.
func (m MultiChoice) Choice() string {
	if !m.Submitted || m.Selected >= len(m.Options) {
		return ""
	}
	return m.Options[m.Selected]
}

// Bindings lists the keys for the footer, digits excluded.
func (m MultiChoice) Bindings() []key.Binding {
	return []key.Binding{m.Keys.Up, m.Keys.Down, m.Keys.Choose}
}

var (
	choiceStyle   = lipgloss.NewStyle().Foreground(theme.Text)
	choiceCurrent = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	choiceNumber  = lipgloss.NewStyle().Foreground(theme.TextDim)
)

func (m MultiChoice) View() string {
	lines := make([]string, len(m.Options))
	for i, opt := range m.Options {
		cursor, style := "  ", choiceStyle
		if i == m.Selected {
			cursor, style = "▸ ", choiceCurrent
		}
		lines[i] = cursor + choiceNumber.Render(fmt.Sprintf("%d)", i+1)) + "  " + style.Render(opt)
	}
	return strings.Join(lines, "\n") + "\n"
}
