// Package subject holds the per-game strategies a session plays.
package subject

import (
	"context"
	"time"

	"github.com/abhisek/brainarcade/internal/leaderboard"
	"github.com/abhisek/brainarcade/internal/logger"
	"github.com/abhisek/brainarcade/internal/problemgen"
	"github.com/abhisek/brainarcade/internal/session"
)

// Timeout is shown as the given answer when time ran out.
const Timeout = "(timeout)"

// Deps are the collaborators a strategy may need. Zero values get defaults.
type Deps struct {
	Rand *problemgen.Rand

	// Sentences backs the English game. Defaults to the built-in bank.
	Sentences problemgen.SentenceSource

	Now    func() time.Time
	Logger *logger.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Rand == nil {
		d.Rand = problemgen.NewRand()
	}
	if d.Sentences == nil {
		d.Sentences = problemgen.NewTemplateSentences(d.Rand)
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Logger == nil {
		d.Logger = logger.NewNop()
	}
	return d
}

// New returns the strategy for s.
func New(s leaderboard.Subject, deps Deps) (session.Strategy, error) {
	deps = deps.withDefaults()
	switch s {
	case leaderboard.SubjectMaths:
		return NewMaths(deps.Rand), nil
	case leaderboard.SubjectEnglish:
		return NewEnglish(deps.Sentences, deps.Rand, deps.Now, deps.Logger), nil
	case leaderboard.SubjectArt:
		return newOrdering(s, problemgen.NewArtGenerator(deps.Rand)), nil
	case leaderboard.SubjectCode:
		return newOrdering(s, problemgen.NewCodeGenerator(deps.Rand)), nil
	}
	_, err := leaderboard.ParseSubject(string(s))
	return nil, err
}

// Maths asks adaptive multiple choice questions.
type Maths struct {
	gen *problemgen.MathGenerator
}

func NewMaths(rng *problemgen.Rand) *Maths {
	return &Maths{gen: problemgen.NewMathGenerator(rng)}
}

func (m *Maths) Subject() leaderboard.Subject { return leaderboard.SubjectMaths }
func (m *Maths) Adaptive() bool               { return true }

func (m *Maths) Prepare(_ context.Context, _ leaderboard.Player, count int) (int, error) {
	return count, nil
}

func (m *Maths) Generate(ctx context.Context, in problemgen.GenerateInput) (*problemgen.Question, error) {
	return m.gen.Generate(ctx, in)
}

func (m *Maths) Check(q *problemgen.Question, a session.Answer) bool {
	return problemgen.CheckChoice(a.Choice, q)
}

func (m *Maths) FormatMistake(q *problemgen.Question, a session.Answer, timedOut bool) session.Mistake {
	return mistake(q, a.Choice, q.Answer, timedOut)
}

// ordering covers the step-ordering games, where a piece list is checked
// against the canonical order.
type ordering struct {
	subject leaderboard.Subject
	gen     problemgen.Generator
}

func newOrdering(s leaderboard.Subject, gen problemgen.Generator) *ordering {
	return &ordering{subject: s, gen: gen}
}

func (o *ordering) Subject() leaderboard.Subject { return o.subject }
func (o *ordering) Adaptive() bool               { return false }

func (o *ordering) Prepare(_ context.Context, _ leaderboard.Player, count int) (int, error) {
	return count, nil
}

func (o *ordering) Generate(ctx context.Context, in problemgen.GenerateInput) (*problemgen.Question, error) {
	return o.gen.Generate(ctx, in)
}

func (o *ordering) Check(q *problemgen.Question, a session.Answer) bool {
	return problemgen.CheckOrder(a.Order, q.Steps)
}

func (o *ordering) FormatMistake(q *problemgen.Question, a session.Answer, timedOut bool) session.Mistake {
	return mistake(q, problemgen.JoinSteps(a.Order), q.Answer, timedOut)
}

func mistake(q *problemgen.Question, given, expected string, timedOut bool) session.Mistake {
	if timedOut {
		given = Timeout
	}
	return session.Mistake{Prompt: q.Text, Given: given, Expected: expected, TimedOut: timedOut}
}
