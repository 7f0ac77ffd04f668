// Package session runs one timed game: it asks questions from a subject
// strategy, scores answers, adapts difficulty and records the result
// through the daily-lock gate.
package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/abhisek/brainarcade/internal/leaderboard"
	"github.com/abhisek/brainarcade/internal/logger"
	"github.com/abhisek/brainarcade/internal/problemgen"
	"github.com/abhisek/brainarcade/internal/settings"
	"github.com/google/uuid"
)

var (
	ErrNotActive  = errors.New("no question is awaiting an answer")
	ErrFinished   = errors.New("session already finished")
	ErrUnfinished = errors.New("session still has questions to answer")
)

// Config wires a Session.
type Config struct {
	Strategy Strategy
	Settings settings.Settings
	Gate     *leaderboard.Gate

	// Now defaults to the gate's clock.
	Now    func() time.Time
	Logger *logger.Logger
}

// Session is a single playthrough. Dropping it before Finish writes
// nothing.
type Session struct {
	id       string
	strategy Strategy
	settings settings.Settings
	gate     *leaderboard.Gate
	now      func() time.Time
	log      *logger.Logger

	player leaderboard.Player
	diff   *Difficulty
	clock  Clock
	scorer Scorer
	state  State

	result *Result
}

// Result is what Finish reports.
type Result struct {
	Summary Summary
	Board   leaderboard.Board

	// Discarded is set when the player had already finished a game today,
	// so this session's totals were not recorded.
	Discarded bool
}

func New(cfg Config) *Session {
	now := cfg.Now
	if now == nil {
		now = cfg.Gate.Now
	}
	log := cfg.Logger
	if log == nil {
		log = logger.NewNop()
	}
	s := cfg.Settings
	return &Session{
		id:       uuid.NewString(),
		strategy: cfg.Strategy,
		settings: s,
		gate:     cfg.Gate,
		now:      now,
		log:      log,
		diff:     NewDifficulty(s.StartDifficulty(), s.MaxDifficulty(), s.StreakToIncrease(), s.WrongToDecrease()),
		scorer:   NewScorer(s),
		state: State{
			Limit: time.Duration(s.TimePerQuestion()) * time.Second,
			Phase: PhaseReady,
		},
	}
}

func (s *Session) ID() string                 { return s.id }
func (s *Session) Player() leaderboard.Player { return s.player }
func (s *Session) Subject() leaderboard.Subject {
	return s.strategy.Subject()
}

// State returns a copy of the running state.
func (s *Session) State() State {
	st := s.state
	st.Mistakes = slices.Clone(s.state.Mistakes)
	return st
}

// Remaining is the whole seconds left on the current question.
func (s *Session) Remaining() int {
	if s.state.Phase != PhaseActive {
		return 0
	}
	return s.clock.Remaining(s.now())
}

// Start validates the player, checks the daily lock, prepares the subject
// and shows the first question. A refused or failed start charges no lock.
func (s *Session) Start(ctx context.Context, name string, grade int) error {
	if s.state.Phase != PhaseReady {
		return fmt.Errorf("start: session in phase %s", s.state.Phase)
	}
	p, err := leaderboard.NewPlayer(name, grade, s.strategy.Subject())
	if err != nil {
		return err
	}
	if err := s.gate.Check(ctx, p); err != nil {
		return err
	}

	count := s.settings.QuestionCount()
	n, err := s.strategy.Prepare(ctx, p, count)
	if err != nil {
		return fmt.Errorf("prepare %s: %w", p.Subject, err)
	}
	count = min(count, n)
	if count <= 0 {
		return fmt.Errorf("prepare %s: no questions: %w", p.Subject, problemgen.ErrGeneration)
	}

	s.player = p
	s.state.Total = count
	s.state.Index = -1
	s.log = s.log.With("session", s.id, "player", p.Name, "grade", p.Grade, "subject", p.Subject)
	s.log.Info("session started", "questions", count)
	return s.advance(ctx)
}

// Tick auto-submits the current question as wrong once its time is up.
// It reports whether that happened.
func (s *Session) Tick(now time.Time) (Outcome, bool) {
	if s.state.Phase != PhaseActive || !s.clock.Expired(now) {
		return Outcome{}, false
	}
	return s.score(Answer{}, now, true), true
}

// Submit scores a answer to the current question and moves to
// PhaseFeedback.
func (s *Session) Submit(a Answer) (Outcome, error) {
	if s.state.Phase != PhaseActive {
		return Outcome{}, ErrNotActive
	}
	now := s.now()
	return s.score(a, now, s.clock.Expired(now)), nil
}

func (s *Session) score(a Answer, now time.Time, timedOut bool) Outcome {
	q := s.state.Question
	elapsed := s.clock.Elapsed(now)
	correct := !timedOut && s.strategy.Check(q, a)

	out := Outcome{
		Correct:  correct,
		TimedOut: timedOut,
		Points:   s.scorer.Score(correct, s.clock.Remaining(now)),
		Expected: q.Answer,
		Elapsed:  elapsed,
	}

	st := &s.state
	st.Attempted++
	st.Score += out.Points
	st.TotalTime += elapsed
	if correct {
		st.Correct++
	} else {
		st.Mistakes = append(st.Mistakes, s.strategy.FormatMistake(q, a, timedOut))
	}

	if s.strategy.Adaptive() {
		if correct {
			s.diff.Correct()
		} else {
			s.diff.Wrong()
		}
		st.Tier, st.Streak = s.diff.Tier(), s.diff.Streak()
	}

	st.Last = &out
	st.Phase = PhaseFeedback
	s.log.Debug("answer scored", "index", st.Index, "correct", correct,
		"timed_out", timedOut, "points", out.Points, "tier", st.Tier)
	return out
}

// Next leaves PhaseFeedback for the next question, or PhaseDone after the
// last one.
func (s *Session) Next(ctx context.Context) error {
	if s.state.Phase != PhaseFeedback {
		return ErrNotActive
	}
	return s.advance(ctx)
}

func (s *Session) advance(ctx context.Context) error {
	st := &s.state
	if st.Index+1 >= st.Total {
		st.Phase = PhaseDone
		st.Question = nil
		return nil
	}

	in := problemgen.GenerateInput{
		Grade:  s.player.Grade,
		Topics: s.settings.EnabledTopics(),
		Index:  st.Index + 1,
	}
	if s.strategy.Adaptive() {
		in.Difficulty = s.diff.Tier()
	}
	q, err := s.strategy.Generate(ctx, in)
	if err != nil {
		return fmt.Errorf("question %d: %w", in.Index+1, err)
	}

	st.Index = in.Index
	st.Question = q
	st.Tier, st.Streak = s.diff.Tier(), s.diff.Streak()
	st.Last = nil
	st.Phase = PhaseActive
	s.clock.Start(st.Limit, s.now())
	return nil
}

// Finish records the totals through the gate once every question has been
// answered; before that it returns ErrNotActive (not started) or
// ErrUnfinished and writes nothing. It runs once; later calls return the
// first result. When the player already finished today the result is
// marked Discarded and no error is returned. A write failure returns the
// local summary with the error.
func (s *Session) Finish(ctx context.Context) (Result, error) {
	if s.result != nil {
		return *s.result, nil
	}
	switch s.state.Phase {
	case PhaseReady:
		return Result{}, ErrNotActive
	case PhaseActive, PhaseFeedback:
		return Result{}, ErrUnfinished
	}

	res := Result{Summary: BuildSummary(s.player, &s.state)}

	board, err := s.gate.Finalize(ctx, s.player, leaderboard.Delta{
		Score:       s.state.Score,
		Attempted:   s.state.Attempted,
		Correct:     s.state.Correct,
		TotalTimeMs: s.state.TotalTime.Milliseconds(),
	})
	switch {
	case errors.Is(err, leaderboard.ErrAlreadyPlayed):
		res.Discarded = true
		res.Board, _ = s.gate.CurrentBoard(ctx, s.player.Subject)
		s.log.Info("session discarded, already played today")
	case err != nil:
		res.Board = board
		s.log.Error("finalize session", "error", err)
		s.result = &res
		return res, err
	default:
		res.Board = board
		s.log.Info("session finished", "score", res.Summary.Score,
			"correct", res.Summary.Correct, "attempted", res.Summary.Attempted)
	}
	s.result = &res
	return res, nil
}
