package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func press(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestMultiChoice_NumberKeySubmits(t *testing.T) {
	m := NewMultiChoice([]string{"10", "12", "14", "9"})
	m, _ = m.Update(press("3"))
	assert.True(t, m.Submitted)
	assert.Equal(t, "14", m.Choice())

	// Ignored once submitted.
	m, _ = m.Update(press("1"))
	assert.Equal(t, "14", m.Choice())
}

func TestMultiChoice_ArrowsAndEnter(t *testing.T) {
	m := NewMultiChoice([]string{"a", "b", "c", "d"})
	m, _ = m.Update(press("down"))
	m, _ = m.Update(press("down"))
	m, _ = m.Update(press("up"))
	assert.Equal(t, "", m.Choice())
	m, _ = m.Update(press("enter"))
	assert.Equal(t, "b", m.Choice())

	m = NewMultiChoice([]string{"a", "b"})
	m, _ = m.Update(press("7"))
	assert.False(t, m.Submitted)
}

func TestOrdering_PickAndUndo(t *testing.T) {
	o := NewOrdering([]string{"dog", "The", "runs"})
	o, _ = o.Update(press("2")) // The
	o, _ = o.Update(press("1")) // dog
	assert.Equal(t, []string{"The", "dog"}, o.Order())
	assert.False(t, o.Complete())

	o, _ = o.Update(press("backspace"))
	assert.Equal(t, []string{"The"}, o.Order())

	o, _ = o.Update(press("1")) // dog, first remaining
	o, _ = o.Update(press("1")) // runs
	assert.Equal(t, []string{"The", "dog", "runs"}, o.Order())
	assert.True(t, o.Complete())

	o, _ = o.Update(press("1"))
	assert.Len(t, o.Order(), 3)
}

func TestOrdering_DuplicatePieces(t *testing.T) {
	o := NewOrdering([]string{"end", "end", "start"})
	o, _ = o.Update(press("3"))
	o, _ = o.Update(press("1"))
	o, _ = o.Update(press("1"))
	assert.Equal(t, []string{"start", "end", "end"}, o.Order())
}

func TestTimeBar_Fraction(t *testing.T) {
	assert.InDelta(t, 0.5, NewTimeBar(10, 20, 40).Fraction(), 1e-9)
	assert.Equal(t, 0.0, NewTimeBar(10, 0, 40).Fraction())
	assert.Equal(t, 1.0, NewTimeBar(30, 20, 40).Fraction())
	assert.Equal(t, 0.0, NewTimeBar(-1, 20, 40).Fraction())
}

func TestTimeBar_ViewShowsClock(t *testing.T) {
	view := NewTimeBar(7, 20, 40).View()
	assert.Contains(t, view, "0:07")
}

func TestMenu_WrapsAndChooses(t *testing.T) {
	var chosen string
	pick := func(label string) func() tea.Cmd {
		return func() tea.Cmd { chosen = label; return nil }
	}
	m := NewMenu([]MenuItem{
		{Label: "PLAY", Action: pick("PLAY")},
		{Label: "LEADERBOARD", Action: pick("LEADERBOARD")},
		{Label: "EXIT GAME"},
	})

	m, _ = m.Update(press("up"))
	assert.Equal(t, 2, m.Selected, "up from the top wraps")
	m, _ = m.Update(press("down"))
	assert.Equal(t, 0, m.Selected)

	m, _ = m.Update(press("j"))
	m, _ = m.Update(press("enter"))
	assert.Equal(t, "LEADERBOARD", chosen)

	m, _ = m.Update(press("1"))
	assert.Equal(t, "PLAY", chosen)
	assert.Equal(t, 0, m.Selected)

	m, _ = m.Update(press("9"))
	assert.Equal(t, 0, m.Selected, "out of range digit ignored")

	m, _ = m.Update(press("3"))
	assert.Equal(t, 2, m.Selected, "inert item still selectable")
}

func TestMenu_ViewCompact(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "PLAY"}, {Label: "EXIT GAME"}})
	assert.Contains(t, m.View(40, true), "▸ PLAY")
	assert.Contains(t, m.View(40, false), "EXIT GAME")
}

func TestContentWidth_Clamped(t *testing.T) {
	assert.Equal(t, 20, ContentWidth(10))
	assert.Equal(t, 44, ContentWidth(50))
	assert.Equal(t, 60, ContentWidth(200))
}

func TestRenderSubjectMascot(t *testing.T) {
	assert.Contains(t, RenderSubjectMascot(MascotCelebrating, "code_kids"), "</>")
	assert.Contains(t, RenderSubjectMascot(MascotCelebrating, "code_kids"), "╚═╝")
	assert.Contains(t, RenderMascot(MascotIdle), "A+✎")
	assert.Contains(t, RenderSubjectMascot(MascotAlert, "maths"), "│ ◉ ◉ │ !")
}

func TestMultiChoice_StopsAtEnds(t *testing.T) {
	m := NewMultiChoice([]string{"a", "b"})
	m, _ = m.Update(press("up"))
	assert.Equal(t, 0, m.Selected)
	m, _ = m.Update(press("down"))
	m, _ = m.Update(press("down"))
	assert.Equal(t, 1, m.Selected)

	help := m.Bindings()[2].Help()
	assert.Equal(t, "submit", help.Desc)
	assert.Equal(t, "choose", DefaultMenuKeys.Choose.Help().Desc, "menu keys untouched")
}
