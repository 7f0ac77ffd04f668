package app

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/brainarcade/internal/leaderboard"
	"github.com/abhisek/brainarcade/internal/router"
	"github.com/abhisek/brainarcade/internal/screen"
	"github.com/abhisek/brainarcade/internal/screens/entry"
	"github.com/abhisek/brainarcade/internal/screens/home"
	"github.com/abhisek/brainarcade/internal/screens/welcome"
)

func testDeps() screen.Deps {
	now := time.Date(2026, 3, 4, 10, 0, 0, 0, time.Local)
	return screen.Deps{
		Gate: leaderboard.NewGate(leaderboard.NewMemoryStore(), leaderboard.WithClock(func() time.Time { return now })),
	}
}

func TestStartsOnWelcome(t *testing.T) {
	m := newAppModel(Options{Deps: testDeps()})
	assert.IsType(t, &welcome.WelcomeScreen{}, m.router.Active())

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, router.ReplaceScreenMsg{}, msg)
	m.Update(msg)
	assert.IsType(t, &home.HomeScreen{}, m.router.Active())
	assert.Equal(t, 1, m.router.Depth())
}

func TestPlayOptionPushesEntry(t *testing.T) {
	m := newAppModel(Options{Deps: testDeps(), Play: &entry.Prefill{Name: "asha", Grade: 3, Subject: leaderboard.SubjectMaths}})
	assert.IsType(t, &home.HomeScreen{}, m.router.Active())
	assert.NotNil(t, m.Init())
}

func TestEscPopsAndCtrlCQuits(t *testing.T) {
	m := newAppModel(Options{Deps: testDeps()})
	m.Update(router.Push(home.New(testDeps()))())
	require.Equal(t, 2, m.router.Depth())

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())

	_, cmd = m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestStatusShowsWeek(t *testing.T) {
	m := newAppModel(Options{Deps: testDeps()})
	assert.Equal(t, "week of 2026-03-02", m.status())
}
