package session

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/abhisek/brainarcade/internal/leaderboard"
	"github.com/abhisek/brainarcade/internal/problemgen"
	"github.com/abhisek/brainarcade/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStrategy struct {
	subject   leaderboard.Subject
	available int
	prepErr   error
	genErr    error
	tiers     []int
}

func (f *fakeStrategy) Subject() leaderboard.Subject { return f.subject }

func (f *fakeStrategy) Prepare(_ context.Context, _ leaderboard.Player, count int) (int, error) {
	if f.prepErr != nil {
		return 0, f.prepErr
	}
	if f.available > 0 {
		return f.available, nil
	}
	return count, nil
}

func (f *fakeStrategy) Generate(_ context.Context, in problemgen.GenerateInput) (*problemgen.Question, error) {
	if f.genErr != nil {
		return nil, f.genErr
	}
	f.tiers = append(f.tiers, in.Difficulty)
	return &problemgen.Question{
		Topic:      "add",
		Text:       fmt.Sprintf("Q%d: 2 + 2", in.Index+1),
		Format:     problemgen.FormatMultipleChoice,
		Answer:     "4",
		Choices:    []string{"3", "4", "5", "6"},
		Difficulty: in.Difficulty,
	}, nil
}

func (f *fakeStrategy) Check(q *problemgen.Question, a Answer) bool {
	return problemgen.CheckChoice(a.Choice, q)
}

func (f *fakeStrategy) FormatMistake(q *problemgen.Question, a Answer, timedOut bool) Mistake {
	return Mistake{Prompt: q.Text, Given: a.Text(", "), Expected: q.Answer, TimedOut: timedOut}
}

func (f *fakeStrategy) Adaptive() bool { return f.subject == leaderboard.SubjectMaths }

type fakeClock struct{ t time.Time }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 12, 10, 0, 0, 0, time.Local)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func intp(v int) *int { return &v }

func mathsSettings(p settings.Patch) settings.Settings {
	return settings.Apply(settings.Defaults(leaderboard.SubjectMaths), p)
}

type harness struct {
	clock *fakeClock
	store *leaderboard.MemoryStore
	gate  *leaderboard.Gate
}

func newHarness() *harness {
	h := &harness{clock: newFakeClock(), store: leaderboard.NewMemoryStore()}
	h.gate = leaderboard.NewGate(h.store, leaderboard.WithClock(h.clock.Now))
	return h
}

func (h *harness) session(strat Strategy, s settings.Settings) *Session {
	return New(Config{Strategy: strat, Settings: s, Gate: h.gate})
}

// playThrough answers every remaining question correctly, spending
// perQuestion on each.
func (h *harness) playThrough(t *testing.T, s *Session, perQuestion time.Duration) {
	t.Helper()
	ctx := context.Background()
	for s.State().Phase != PhaseDone {
		h.clock.Advance(perQuestion)
		_, err := s.Submit(Answer{Choice: "4"})
		require.NoError(t, err)
		require.NoError(t, s.Next(ctx))
	}
}

func TestSession_MathsCorrectWithBonus(t *testing.T) {
	h := newHarness()
	s := h.session(&fakeStrategy{subject: leaderboard.SubjectMaths},
		mathsSettings(settings.Patch{QuestionCount: intp(5)}))

	require.NoError(t, s.Start(context.Background(), "  Asha ", 3))
	assert.Equal(t, "asha", s.Player().Name)
	assert.Equal(t, PhaseActive, s.State().Phase)
	assert.Equal(t, 5, s.State().Total)

	h.clock.Advance(2 * time.Second)
	out, err := s.Submit(Answer{Choice: "4"})
	require.NoError(t, err)
	assert.True(t, out.Correct)
	// 28s left, step 5, 1 per step.
	assert.Equal(t, 15, out.Points)
	assert.Equal(t, PhaseFeedback, s.State().Phase)
	assert.Equal(t, 2*time.Second, s.State().TotalTime)
}

func TestSession_WrongAnswerPenaltyAndTierDrop(t *testing.T) {
	h := newHarness()
	strat := &fakeStrategy{subject: leaderboard.SubjectMaths}
	s := h.session(strat, mathsSettings(settings.Patch{
		QuestionCount:   intp(5),
		StartDifficulty: intp(3),
	}))
	ctx := context.Background()
	require.NoError(t, s.Start(ctx, "ravi", 4))
	assert.Equal(t, 3, s.State().Tier)

	out, err := s.Submit(Answer{Choice: "5"})
	require.NoError(t, err)
	assert.False(t, out.Correct)
	assert.Equal(t, -5, out.Points)
	assert.Equal(t, 2, s.State().Tier)

	st := s.State()
	require.Len(t, st.Mistakes, 1)
	assert.Equal(t, "5", st.Mistakes[0].Given)
	assert.Equal(t, "4", st.Mistakes[0].Expected)

	require.NoError(t, s.Next(ctx))
	assert.Equal(t, []int{3, 2}, strat.tiers)
}

func TestSession_StreakRaisesTierUpToMax(t *testing.T) {
	h := newHarness()
	s := h.session(&fakeStrategy{subject: leaderboard.SubjectMaths}, mathsSettings(settings.Patch{
		QuestionCount:    intp(12),
		MaxDifficulty:    intp(2),
		StreakToIncrease: intp(2),
	}))
	ctx := context.Background()
	require.NoError(t, s.Start(ctx, "mira", 2))

	for s.State().Phase != PhaseDone {
		_, err := s.Submit(Answer{Choice: "4"})
		require.NoError(t, err)
		tier := s.State().Tier
		assert.GreaterOrEqual(t, tier, 1)
		assert.LessOrEqual(t, tier, 2)
		require.NoError(t, s.Next(ctx))
	}
	assert.Equal(t, 2, s.State().Tier)
}

func TestSession_TimeoutCountsAsWrong(t *testing.T) {
	h := newHarness()
	s := h.session(&fakeStrategy{subject: leaderboard.SubjectMaths}, mathsSettings(settings.Patch{
		QuestionCount:   intp(5),
		TimePerQuestion: intp(10),
	}))
	require.NoError(t, s.Start(context.Background(), "zoya", 5))

	h.clock.Advance(9 * time.Second)
	_, fired := s.Tick(h.clock.Now())
	assert.False(t, fired)
	assert.Equal(t, 1, s.Remaining())

	h.clock.Advance(2 * time.Second)
	out, fired := s.Tick(h.clock.Now())
	require.True(t, fired)
	assert.True(t, out.TimedOut)
	assert.False(t, out.Correct)
	assert.Equal(t, 10*time.Second, out.Elapsed)

	st := s.State()
	assert.Equal(t, 1, st.Attempted)
	assert.Equal(t, 0, st.Correct)
	require.Len(t, st.Mistakes, 1)
	assert.True(t, st.Mistakes[0].TimedOut)

	_, err := s.Submit(Answer{Choice: "4"})
	assert.ErrorIs(t, err, ErrNotActive)
}

func TestSession_LateSubmitIsTimeout(t *testing.T) {
	h := newHarness()
	s := h.session(&fakeStrategy{subject: leaderboard.SubjectMaths},
		mathsSettings(settings.Patch{TimePerQuestion: intp(10)}))
	require.NoError(t, s.Start(context.Background(), "kai", 1))

	h.clock.Advance(15 * time.Second)
	out, err := s.Submit(Answer{Choice: "4"})
	require.NoError(t, err)
	assert.True(t, out.TimedOut)
	assert.False(t, out.Correct)
}

func TestSession_AllCorrectFinish(t *testing.T) {
	h := newHarness()
	s := h.session(&fakeStrategy{subject: leaderboard.SubjectMaths},
		mathsSettings(settings.Patch{QuestionCount: intp(5)}))
	ctx := context.Background()
	require.NoError(t, s.Start(ctx, "Asha", 3))

	for s.State().Phase != PhaseDone {
		h.clock.Advance(time.Second)
		_, err := s.Submit(Answer{Choice: "4"})
		require.NoError(t, err)
		require.NoError(t, s.Next(ctx))
	}

	res, err := s.Finish(ctx)
	require.NoError(t, err)
	assert.False(t, res.Discarded)
	assert.Equal(t, 5, res.Summary.Correct)
	assert.Equal(t, 5, res.Summary.Attempted)
	assert.InDelta(t, 1.0, res.Summary.Accuracy, 1e-9)
	assert.InDelta(t, 1.0, res.Summary.AvgSeconds, 1e-9)
	assert.Empty(t, res.Summary.Mistakes)

	require.Len(t, res.Board.Leaders, 1)
	rec := res.Board.Leaders[0]
	assert.Equal(t, "asha", rec.Name)
	assert.Equal(t, res.Summary.Score, rec.Score)
	assert.Equal(t, int64(5000), rec.TotalTimeMs)
	assert.Equal(t, []string{"asha"}, res.Board.Players)

	again, err := s.Finish(ctx)
	require.NoError(t, err)
	assert.Equal(t, res, again)

	recs, err := h.store.List(ctx, leaderboard.SubjectMaths, leaderboard.WeekOf(h.clock.Now()), 10)
	require.NoError(t, err)
	assert.Equal(t, 5, recs[0].Attempted)
}

func TestSession_SecondGameSameDayRefused(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	first := h.session(&fakeStrategy{subject: leaderboard.SubjectEnglish}, settings.Defaults(leaderboard.SubjectEnglish))
	require.NoError(t, first.Start(ctx, "asha", 3))
	h.playThrough(t, first, time.Second)
	_, err := first.Finish(ctx)
	require.NoError(t, err)

	second := h.session(&fakeStrategy{subject: leaderboard.SubjectEnglish}, settings.Defaults(leaderboard.SubjectEnglish))
	err = second.Start(ctx, "ASHA", 3)
	assert.ErrorIs(t, err, leaderboard.ErrAlreadyPlayed)
	assert.Equal(t, "You already played today! Come tomorrow", UserMessage(err))

	other := h.session(&fakeStrategy{subject: leaderboard.SubjectMaths}, settings.Defaults(leaderboard.SubjectMaths))
	assert.NoError(t, other.Start(ctx, "asha", 3))

	h.clock.Advance(24 * time.Hour)
	next := h.session(&fakeStrategy{subject: leaderboard.SubjectEnglish}, settings.Defaults(leaderboard.SubjectEnglish))
	assert.NoError(t, next.Start(ctx, "asha", 3))
}

func TestSession_RaceLoserIsDiscarded(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	a := h.session(&fakeStrategy{subject: leaderboard.SubjectArt}, settings.Defaults(leaderboard.SubjectArt))
	b := h.session(&fakeStrategy{subject: leaderboard.SubjectArt}, settings.Defaults(leaderboard.SubjectArt))
	require.NoError(t, a.Start(ctx, "neel", 6))
	require.NoError(t, b.Start(ctx, "neel", 6))
	h.playThrough(t, a, time.Second)
	h.playThrough(t, b, time.Second)

	_, err := a.Finish(ctx)
	require.NoError(t, err)
	res, err := b.Finish(ctx)
	require.NoError(t, err)
	assert.True(t, res.Discarded)
	require.Len(t, res.Board.Leaders, 1)
}

func TestSession_StartValidation(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	strat := &fakeStrategy{subject: leaderboard.SubjectCode}

	err := h.session(strat, settings.Defaults(leaderboard.SubjectCode)).Start(ctx, "   ", 3)
	assert.ErrorIs(t, err, leaderboard.ErrNameRequired)
	assert.Equal(t, "Type your name or select from list", UserMessage(err))

	err = h.session(strat, settings.Defaults(leaderboard.SubjectCode)).Start(ctx, "kai", 10)
	assert.ErrorIs(t, err, leaderboard.ErrInvalidGrade)
	assert.Equal(t, "Class should be 1-9", UserMessage(err))
}

func TestSession_PrepareFailureChargesNoLock(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	failing := &fakeStrategy{subject: leaderboard.SubjectEnglish, prepErr: problemgen.ErrGeneration}
	err := h.session(failing, settings.Defaults(leaderboard.SubjectEnglish)).Start(ctx, "asha", 3)
	require.ErrorIs(t, err, problemgen.ErrGeneration)
	assert.Equal(t, "AI failed. Try again.", UserMessage(err))

	ok := h.session(&fakeStrategy{subject: leaderboard.SubjectEnglish}, settings.Defaults(leaderboard.SubjectEnglish))
	assert.NoError(t, ok.Start(ctx, "asha", 3))
}

func TestSession_ShortSetShrinksTotal(t *testing.T) {
	h := newHarness()
	s := h.session(&fakeStrategy{subject: leaderboard.SubjectEnglish, available: 6},
		settings.Defaults(leaderboard.SubjectEnglish))
	require.NoError(t, s.Start(context.Background(), "asha", 3))
	assert.Equal(t, 6, s.State().Total)
}

func TestSession_AbandonWritesNothing(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	s := h.session(&fakeStrategy{subject: leaderboard.SubjectMaths}, settings.Defaults(leaderboard.SubjectMaths))
	require.NoError(t, s.Start(ctx, "asha", 3))
	_, err := s.Submit(Answer{Choice: "4"})
	require.NoError(t, err)

	_, err = h.store.Find(ctx, leaderboard.Key{Name: "asha", Grade: 3, Subject: leaderboard.SubjectMaths,
		Week: leaderboard.WeekOf(h.clock.Now())})
	assert.ErrorIs(t, err, leaderboard.ErrNotFound)
}

func TestSession_FinishMidGameWritesNothing(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	s := h.session(&fakeStrategy{subject: leaderboard.SubjectMaths}, settings.Defaults(leaderboard.SubjectMaths))
	require.NoError(t, s.Start(ctx, "asha", 3))

	_, err := s.Finish(ctx)
	assert.ErrorIs(t, err, ErrUnfinished, "question on screen")

	_, err = s.Submit(Answer{Choice: "4"})
	require.NoError(t, err)
	_, err = s.Finish(ctx)
	assert.ErrorIs(t, err, ErrUnfinished, "feedback after the first of ten")

	_, err = h.store.Find(ctx, leaderboard.Key{Name: "asha", Grade: 3, Subject: leaderboard.SubjectMaths,
		Week: leaderboard.WeekOf(h.clock.Now())})
	assert.ErrorIs(t, err, leaderboard.ErrNotFound)

	require.NoError(t, s.Next(ctx))
	h.playThrough(t, s, time.Second)
	res, err := s.Finish(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, res.Summary.Attempted)
}

func TestSession_EightMathsQuestionsScore112(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	s := h.session(&fakeStrategy{subject: leaderboard.SubjectMaths},
		mathsSettings(settings.Patch{QuestionCount: intp(8)}))
	require.NoError(t, s.Start(ctx, "asha", 3))
	require.Equal(t, 30, s.Remaining())

	for s.State().Phase != PhaseDone {
		h.clock.Advance(10 * time.Second)
		out, err := s.Submit(Answer{Choice: "4"})
		require.NoError(t, err)
		assert.Equal(t, 14, out.Points, "20s left: 10 base plus 4 bonus steps")
		require.NoError(t, s.Next(ctx))
	}

	res, err := s.Finish(ctx)
	require.NoError(t, err)
	assert.Equal(t, 112, res.Summary.Score)

	rec, err := h.store.Find(ctx, leaderboard.Key{Name: "asha", Grade: 3, Subject: leaderboard.SubjectMaths,
		Week: leaderboard.WeekOf(h.clock.Now())})
	require.NoError(t, err)
	assert.Equal(t, 112, rec.Score)
	assert.Equal(t, 8, rec.Attempted)
	assert.Equal(t, 8, rec.Correct)
	assert.Equal(t, int64(80_000), rec.TotalTimeMs)
}

func TestSession_FinishBeforeStart(t *testing.T) {
	h := newHarness()
	s := h.session(&fakeStrategy{subject: leaderboard.SubjectMaths}, settings.Defaults(leaderboard.SubjectMaths))
	_, err := s.Finish(context.Background())
	assert.ErrorIs(t, err, ErrNotActive)
}

func TestUserMessage_Fallback(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, "Something went wrong. Try again.", UserMessage(errors.New("disk full")))
}
