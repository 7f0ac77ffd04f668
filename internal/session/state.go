package session

import (
	"time"

	"github.com/abhisek/brainarcade/internal/problemgen"
)

// Phase represents the current phase of the session.
type Phase int

const (
	PhaseReady    Phase = iota // Created, not started
	PhaseActive                // A question is on screen and the clock runs
	PhaseFeedback              // Showing the result of the last answer
	PhaseDone                  // All questions answered
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseFeedback:
		return "feedback"
	case PhaseDone:
		return "done"
	}
	return "ready"
}

// State is the session's running state. Only the Session writes it;
// renderers get copies from Session.State.
type State struct {
	// Index is the zero-based number of the current question.
	Index int

	// Total is the number of questions in this session.
	Total int

	// Question is the question on screen (nil before the first one).
	Question *problemgen.Question

	// Limit is the per-question time limit.
	Limit time.Duration

	Score     int
	Attempted int
	Correct   int

	// TotalTime is the summed answer time across questions.
	TotalTime time.Duration

	// Tier and Streak mirror the difficulty controller.
	Tier   int
	Streak int

	Mistakes []Mistake

	// Last is the outcome of the most recent answer, set in PhaseFeedback.
	Last *Outcome

	Phase Phase
}

// Outcome describes one scored answer.
type Outcome struct {
	Correct  bool
	TimedOut bool
	Points   int
	Expected string
	Elapsed  time.Duration
}
