package subject

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/brainarcade/internal/leaderboard"
	"github.com/abhisek/brainarcade/internal/logger"
	"github.com/abhisek/brainarcade/internal/problemgen"
	"github.com/abhisek/brainarcade/internal/session"
)

// English plays the player's sentence set for the day. The set is fetched
// once in Prepare; questions are served from it by index.
type English struct {
	source problemgen.SentenceSource
	rng    *problemgen.Rand
	now    func() time.Time
	log    *logger.Logger

	set []problemgen.Sentence
}

func NewEnglish(source problemgen.SentenceSource, rng *problemgen.Rand, now func() time.Time, log *logger.Logger) *English {
	return &English{source: source, rng: rng, now: now, log: log}
}

func (e *English) Subject() leaderboard.Subject { return leaderboard.SubjectEnglish }
func (e *English) Adaptive() bool               { return false }

func (e *English) Prepare(ctx context.Context, p leaderboard.Player, count int) (int, error) {
	set, err := e.source.Sentences(ctx, problemgen.SentenceRequest{
		Player: p.Name,
		Grade:  p.Grade,
		Date:   leaderboard.LocalDate(e.now()),
		Count:  count,
	})
	if err != nil {
		if errors.Is(err, problemgen.ErrGeneration) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %w", problemgen.ErrGeneration, err)
	}
	if len(set) < count {
		e.log.Warn("short sentence set", "player", p.Name, "grade", p.Grade, "want", count, "got", len(set))
	}
	e.set = set
	return len(set), nil
}

func (e *English) Generate(_ context.Context, in problemgen.GenerateInput) (*problemgen.Question, error) {
	if in.Index < 0 || in.Index >= len(e.set) {
		return nil, fmt.Errorf("%w: sentence %d of %d", problemgen.ErrGeneration, in.Index+1, len(e.set))
	}
	return problemgen.SentenceQuestion(e.rng, e.set[in.Index], in.Grade), nil
}

func (e *English) Check(q *problemgen.Question, a session.Answer) bool {
	return problemgen.CheckSentence(a.Order, q.Answer)
}

func (e *English) FormatMistake(q *problemgen.Question, a session.Answer, timedOut bool) session.Mistake {
	return mistake(q, strings.Join(a.Order, " "), q.Answer, timedOut)
}
