package problemgen

import (
	"errors"
)

// ErrGeneration is wrapped by every failure to produce a question set.
var ErrGeneration = errors.New("question generation failed")

// Question is one generated question ready for display.
type Question struct {
	// Topic is the maths topic id, or the ordering game's kind
	// ("sentence", "art", "code").
	Topic string

	// Text is the prompt shown to the player.
	Text string

	// Format indicates how the player answers.
	Format Format

	// Answer is the canonical answer. For ordering questions it is the
	// steps joined with Arrow, or the sentence itself.
	Answer string

	// Steps is the canonical order of an ordering question.
	Steps []string

	// Pieces is Steps in presentation order.
	Pieces []string

	// Choices holds exactly 4 options for multiple choice questions.
	Choices []string

	// Difficulty is the tier the question was generated at (maths only).
	Difficulty int

	Grade int
}

// Format describes how the player provides an answer.
type Format string

const (
	// FormatMultipleChoice means the player picks one of 4 choices.
	FormatMultipleChoice Format = "multiple_choice"

	// FormatOrdering means the player arranges Pieces into order.
	FormatOrdering Format = "ordering"
)

// GenerateInput holds what a generator needs for one question.
type GenerateInput struct {
	Grade int

	// Difficulty is the current tier. Ordering games ignore it.
	Difficulty int

	// Topics restricts maths questions to these topic ids. Empty means
	// the grade's syllabus.
	Topics []string

	// Index is the zero-based slot in the session.
	Index int
}

// Sentence is one English ordering item.
type Sentence struct {
	Answer string   `json:"answer"`
	Words  []string `json:"words"`
}

// SentenceRequest asks for a day's sentence set.
type SentenceRequest struct {
	Player string
	Grade  int
	Date   string
	Count  int
}
