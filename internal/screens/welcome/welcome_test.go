package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/brainarcade/internal/router"
	"github.com/abhisek/brainarcade/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Home" }

func newTestWelcome() (*WelcomeScreen, *int) {
	calls := 0
	return New(func() screen.Screen {
		calls++
		return &stubScreen{}
	}), &calls
}

func sendTicks(w *WelcomeScreen, n int) {
	for range n {
		w.Update(tickMsg(time.Now()))
	}
}

func TestPhaseTransitions(t *testing.T) {
	w, _ := newTestWelcome()
	assert.False(t, strings.Contains(w.View(80, 24), "top the weekly board"))

	sendTicks(w, 5)
	assert.Equal(t, 500*time.Millisecond, w.elapsed)

	sendTicks(w, 10)
	assert.Equal(t, 1500*time.Millisecond, w.elapsed)
	assert.True(t, strings.Contains(w.View(80, 24), "top the weekly board"))
}

func TestEnterSkipsAnimation(t *testing.T) {
	w, calls := newTestWelcome()
	sendTicks(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.NotNil(t, msg.Screen)
	assert.Equal(t, 1, *calls)
}

func TestNoAutoTransition(t *testing.T) {
	w, calls := newTestWelcome()
	sendTicks(w, 60)
	assert.Equal(t, 0, *calls)
	assert.Equal(t, totalDur, w.elapsed)
}

func TestTransitionOnce(t *testing.T) {
	w, calls := newTestWelcome()
	w.Update(tea.KeyPressMsg{Code: 'a'})
	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b'})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, *calls)

	_, cmd = w.Update(tickMsg(time.Now()))
	assert.Nil(t, cmd, "ticks stop after the transition")
}

func TestBannerCompact(t *testing.T) {
	assert.True(t, strings.Contains(RenderBanner(30), "B R A I N"))
	assert.True(t, strings.Contains(RenderBanner(80), "A  R  C  A  D  E"))
}

func TestMascotBadgeCycles(t *testing.T) {
	w, _ := newTestWelcome()
	assert.Contains(t, w.View(80, 30), "1+2")

	sendTicks(w, badgeTicks)
	assert.Contains(t, w.View(80, 30), "Abc")
}
