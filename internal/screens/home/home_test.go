package home

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/brainarcade/internal/leaderboard"
	"github.com/abhisek/brainarcade/internal/router"
	"github.com/abhisek/brainarcade/internal/screen"
	"github.com/abhisek/brainarcade/internal/screens/entry"
	"github.com/abhisek/brainarcade/internal/screens/scoreboard"
	"github.com/abhisek/brainarcade/internal/screens/teacher"
)

var now = time.Date(2026, 3, 4, 10, 0, 0, 0, time.Local)

func testGate(t *testing.T) *leaderboard.Gate {
	t.Helper()
	st := leaderboard.NewMemoryStore()
	week := leaderboard.WeekOf(now)
	ctx := context.Background()
	require.NoError(t, st.Insert(ctx, leaderboard.Record{Name: "ravi", Grade: 4, Subject: leaderboard.SubjectMaths, Week: week, Score: 90}))
	require.NoError(t, st.Insert(ctx, leaderboard.Record{Name: "mia", Grade: 2, Subject: leaderboard.SubjectEnglish, Week: week, Score: 120}))
	require.NoError(t, st.Insert(ctx, leaderboard.Record{Name: "asha", Grade: 3, Subject: leaderboard.SubjectEnglish, Week: week, Score: 30}))
	return leaderboard.NewGate(st, leaderboard.WithClock(func() time.Time { return now }))
}

func TestWeekStats(t *testing.T) {
	st := loadWeekStats(context.Background(), testGate(t))
	assert.True(t, st.loaded)
	assert.Equal(t, 3, st.players)
	assert.Equal(t, "mia", st.topName)
	assert.Equal(t, 120, st.topScore)
}

func TestStatsShownAfterInit(t *testing.T) {
	h := New(screen.Deps{Gate: testGate(t)})
	h.Update(h.Init()())
	view := h.View(120, 40)
	assert.True(t, strings.Contains(view, "3 PLAYERS THIS WEEK"))
	assert.True(t, strings.Contains(view, "MIA 120"))
}

func TestMenuPushesScreens(t *testing.T) {
	h := New(screen.Deps{Gate: testGate(t)})

	pushed := func() screen.Screen {
		_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
		require.NotNil(t, cmd)
		msg, ok := cmd().(router.PushScreenMsg)
		require.True(t, ok)
		return msg.Screen
	}

	assert.IsType(t, &entry.EntryScreen{}, pushed())
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.IsType(t, &scoreboard.ScoreboardScreen{}, pushed())
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.IsType(t, &teacher.TeacherScreen{}, pushed())
}

func TestNoGateStillRenders(t *testing.T) {
	h := New(screen.Deps{})
	assert.Nil(t, h.Init())
	assert.True(t, strings.Contains(h.View(60, 20), "loading this week"))
}

func TestKeyHintsFromMenuBindings(t *testing.T) {
	hints := New(screen.Deps{}).KeyHints()
	require.Len(t, hints, 5)
	assert.Equal(t, "↑/k", hints[0].Key)
	assert.Equal(t, "1-4", hints[3].Key)
}
