package session

import (
	"context"
	"strings"

	"github.com/abhisek/brainarcade/internal/leaderboard"
	"github.com/abhisek/brainarcade/internal/problemgen"
)

// Answer is what the player submitted: a Choice for multiple choice
// questions, or Order for ordering questions.
type Answer struct {
	Choice string
	Order  []string
}

// Empty reports whether nothing was selected.
func (a Answer) Empty() bool {
	return a.Choice == "" && len(a.Order) == 0
}

// Text renders the answer for display.
func (a Answer) Text(sep string) string {
	if a.Choice != "" {
		return a.Choice
	}
	return strings.Join(a.Order, sep)
}

// Mistake is one wrong answer kept for the review screen.
type Mistake struct {
	Prompt   string `json:"prompt"`
	Given    string `json:"given"`
	Expected string `json:"expected"`
	TimedOut bool   `json:"timed_out"`
}

// Strategy is the per-subject part of a game.
type Strategy interface {
	Subject() leaderboard.Subject

	// Prepare runs before the first question and returns how many
	// questions are available, which may be fewer than count. An error
	// means the session cannot start.
	Prepare(ctx context.Context, p leaderboard.Player, count int) (int, error)

	Generate(ctx context.Context, in problemgen.GenerateInput) (*problemgen.Question, error)
	Check(q *problemgen.Question, a Answer) bool
	FormatMistake(q *problemgen.Question, a Answer, timedOut bool) Mistake

	// Adaptive reports whether the difficulty controller applies.
	Adaptive() bool
}
