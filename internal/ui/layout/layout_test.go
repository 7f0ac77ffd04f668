package layout

import (
	"strings"
	"testing"

	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestRenderHeader_ShowsTitleAndStatus(t *testing.T) {
	h := RenderHeader("Maths", "asha · class 3", 100)
	assert.True(t, strings.Contains(h, "Brain Arcade"))
	assert.True(t, strings.Contains(h, "Maths"))
	assert.True(t, strings.Contains(h, "asha · class 3"))
}

func TestIsTooSmall(t *testing.T) {
	assert.True(t, IsTooSmall(79, 30))
	assert.True(t, IsTooSmall(100, 23))
	assert.False(t, IsTooSmall(MinWidth, MinHeight))
	assert.True(t, IsCompactWidth(99))
	assert.False(t, IsCompactHeight(CompactHeightThreshold))
}

func TestHints_SkipsDisabled(t *testing.T) {
	on := key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Select"))
	off := key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "hidden"), key.WithDisabled())

	assert.Equal(t, []KeyHint{{Key: "Enter", Description: "Select"}}, Hints(on, off))
}

func TestRenderFrame_FillsHeight(t *testing.T) {
	header := RenderHeader("Home", "", 80)
	footer := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}}, 80)
	frame := RenderFrame(header, "body", footer, 80, 30)

	assert.Equal(t, 30, lipgloss.Height(frame))
	assert.Contains(t, frame, "Esc")
}
