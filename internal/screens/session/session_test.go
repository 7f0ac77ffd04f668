package session

import (
	"context"
	"slices"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/brainarcade/internal/leaderboard"
	"github.com/abhisek/brainarcade/internal/problemgen"
	"github.com/abhisek/brainarcade/internal/router"
	"github.com/abhisek/brainarcade/internal/screens/summary"
	sess "github.com/abhisek/brainarcade/internal/session"
	"github.com/abhisek/brainarcade/internal/settings"
	"github.com/abhisek/brainarcade/internal/subject"
)

var t0 = time.Date(2026, 3, 4, 10, 0, 0, 0, time.Local)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

type harness struct {
	now   time.Time
	store *leaderboard.MemoryStore
	gate  *leaderboard.Gate
}

func newHarness() *harness {
	h := &harness{now: t0, store: leaderboard.NewMemoryStore()}
	h.gate = leaderboard.NewGate(h.store, leaderboard.WithClock(func() time.Time { return h.now }))
	return h
}

func (h *harness) start(t *testing.T, subj leaderboard.Subject) *SessionScreen {
	t.Helper()
	strat, err := subject.New(subj, subject.Deps{Rand: problemgen.NewSeededRand(7, 11)})
	require.NoError(t, err)

	count := 5
	game := sess.New(sess.Config{
		Strategy: strat,
		Settings: settings.Apply(settings.Defaults(subj), settings.Patch{QuestionCount: &count}),
		Gate:     h.gate,
		Now:      func() time.Time { return h.now },
	})
	require.NoError(t, game.Start(context.Background(), "Asha", 3))

	s := New(game)
	require.NotNil(t, s.Init())
	return s
}

// answerCorrectly presses the number key of the right option.
func answerCorrectly(t *testing.T, s *SessionScreen) {
	t.Helper()
	q := s.game.State().Question
	require.NotNil(t, q)
	idx := slices.Index(q.Choices, q.Answer)
	require.GreaterOrEqual(t, idx, 0)
	s.Update(keyPress(rune('1' + idx)))
}

// run drives cmd and feeds its message back into the screen.
func run(s *SessionScreen, cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if fm, ok := msg.(finishedMsg); ok {
		_, next := s.Update(fm)
		if next != nil {
			return next()
		}
	}
	return msg
}

func TestMathsGameToResult(t *testing.T) {
	h := newHarness()
	s := h.start(t, leaderboard.SubjectMaths)

	var cmd tea.Cmd
	for i := range 5 {
		assert.Equal(t, sess.PhaseActive, s.game.State().Phase, "question %d", i+1)
		answerCorrectly(t, s)
		require.Equal(t, sess.PhaseFeedback, s.game.State().Phase)
		assert.True(t, strings.Contains(s.View(100, 40), "Correct!"))
		_, cmd = s.Update(keyPress(' '))
	}

	require.True(t, s.finishing)
	msg := run(s, cmd)
	replace, ok := msg.(router.ReplaceScreenMsg)
	require.True(t, ok, "got %T", msg)
	_, ok = replace.Screen.(*summary.SummaryScreen)
	assert.True(t, ok)

	rec, err := h.store.Find(context.Background(), leaderboard.Key{
		Name: "asha", Grade: 3, Subject: leaderboard.SubjectMaths, Week: leaderboard.WeekOf(t0),
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, rec.Score, 5*10)
	assert.Equal(t, 5, rec.Correct)
}

func TestTickTimesOutQuestion(t *testing.T) {
	h := newHarness()
	s := h.start(t, leaderboard.SubjectMaths)

	h.now = t0.Add(31 * time.Second)
	_, cmd := s.Update(timerTickMsg(h.now))
	assert.NotNil(t, cmd, "ticking continues")

	st := s.game.State()
	require.Equal(t, sess.PhaseFeedback, st.Phase)
	require.NotNil(t, st.Last)
	assert.True(t, st.Last.TimedOut)
	assert.True(t, strings.Contains(s.View(100, 40), "Time's up!"))
}

func TestQuitConfirmLeavesWithoutRecording(t *testing.T) {
	h := newHarness()
	s := h.start(t, leaderboard.SubjectMaths)
	answerCorrectly(t, s)
	s.Update(keyPress(' '))

	assert.True(t, s.CapturesEsc())
	s.Update(specialKey(tea.KeyEscape))
	require.True(t, s.showingQuit)
	assert.True(t, strings.Contains(s.View(100, 40), "Leave the game?"))

	s.Update(keyPress('n'))
	assert.False(t, s.showingQuit)

	s.Update(specialKey(tea.KeyEscape))
	_, cmd := s.Update(keyPress('y'))
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopToRootMsg)
	assert.True(t, ok)

	names, err := h.store.ListNames(context.Background(), leaderboard.SubjectMaths, leaderboard.WeekOf(t0), 10)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestOrderingPickUndoSubmit(t *testing.T) {
	h := newHarness()
	s := h.start(t, leaderboard.SubjectCode)

	q := s.game.State().Question
	require.Equal(t, problemgen.FormatOrdering, q.Format)

	// Enter does nothing until every piece is placed.
	s.Update(specialKey(tea.KeyEnter))
	assert.Equal(t, sess.PhaseActive, s.game.State().Phase)

	s.Update(keyPress('1'))
	s.Update(specialKey(tea.KeyBackspace))
	assert.Empty(t, s.order.Order())

	// Place the pieces in solution order: each step's position in the
	// remaining pool is its key.
	pool := slices.Clone(q.Pieces)
	for _, step := range q.Steps {
		i := slices.Index(pool, step)
		require.GreaterOrEqual(t, i, 0)
		s.Update(keyPress(rune('1' + i)))
		pool = slices.Delete(pool, i, i+1)
	}
	require.True(t, s.order.Complete())

	s.Update(specialKey(tea.KeyEnter))
	st := s.game.State()
	require.Equal(t, sess.PhaseFeedback, st.Phase)
	assert.True(t, st.Last.Correct)
}

func TestAlreadyPlayedShowsDiscarded(t *testing.T) {
	h := newHarness()
	first := h.start(t, leaderboard.SubjectMaths)
	second := h.start(t, leaderboard.SubjectMaths)

	finishAll := func(s *SessionScreen) tea.Msg {
		var cmd tea.Cmd
		for range 5 {
			answerCorrectly(t, s)
			_, cmd = s.Update(keyPress(' '))
		}
		return run(s, cmd)
	}

	require.IsType(t, router.ReplaceScreenMsg{}, finishAll(first))
	msg := finishAll(second)
	replace, ok := msg.(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.True(t, strings.Contains(replace.Screen.View(100, 60), summary.AlreadyPlayed))
}
