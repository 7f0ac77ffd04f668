// Package settings holds the teacher-tunable parameters of each game.
//
// A Settings value is always within safe bounds: it can only be produced by
// Load, Defaults or Apply, each of which clamps every field.
package settings

import (
	"encoding/json"
	"slices"

	"github.com/abhisek/brainarcade/internal/leaderboard"
	"github.com/abhisek/brainarcade/internal/problemgen"
)

// Range is an inclusive integer bound.
type Range struct{ Min, Max int }

func (r Range) clamp(v int) int {
	return max(r.Min, min(r.Max, v))
}

// Limits are the per-subject defaults and safe bounds.
type Limits struct {
	QuestionCount    Range
	TimePerQuestion  Range
	BasePoints       Range
	NegativePoints   Range
	BonusStepSeconds Range
	BonusPerStep     Range
	StartDifficulty  Range
	MaxDifficulty    Range
	StreakToIncrease Range
	WrongToDecrease  Range

	Defaults values

	// Adaptive subjects use the difficulty fields and topics.
	Adaptive bool
}

// values is the JSON shape of a stored configuration.
type values struct {
	QuestionCount    int      `json:"questionCount"`
	TimePerQuestion  int      `json:"timePerQuestion"`
	BasePoints       int      `json:"basePoints"`
	NegativePoints   int      `json:"negativePoints"`
	BonusStepSeconds int      `json:"bonusStepSeconds"`
	BonusPerStep     int      `json:"bonusPerStep"`
	StartDifficulty  int      `json:"startDifficulty,omitempty"`
	MaxDifficulty    int      `json:"maxDifficulty,omitempty"`
	StreakToIncrease int      `json:"streakToIncrease,omitempty"`
	WrongToDecrease  int      `json:"wrongToDecrease,omitempty"`
	EnabledTopics    []string `json:"enabledTopics,omitempty"`
}

var mathsLimits = Limits{
	QuestionCount:    Range{5, 30},
	TimePerQuestion:  Range{10, 90},
	BasePoints:       Range{1, 100},
	NegativePoints:   Range{0, 50},
	BonusStepSeconds: Range{1, 15},
	BonusPerStep:     Range{0, 20},
	StartDifficulty:  Range{1, 12},
	MaxDifficulty:    Range{1, 12},
	StreakToIncrease: Range{1, 10},
	WrongToDecrease:  Range{1, 5},
	Defaults: values{
		QuestionCount: 10, TimePerQuestion: 30, BasePoints: 10, NegativePoints: 5,
		BonusStepSeconds: 5, BonusPerStep: 1,
		StartDifficulty: 1, MaxDifficulty: 6, StreakToIncrease: 3, WrongToDecrease: 1,
	},
	Adaptive: true,
}

var englishLimits = Limits{
	QuestionCount:    Range{5, 20},
	TimePerQuestion:  Range{10, 120},
	BasePoints:       Range{1, 100},
	NegativePoints:   Range{0, 50},
	BonusStepSeconds: Range{1, 20},
	BonusPerStep:     Range{0, 20},
	Defaults: values{
		QuestionCount: 8, TimePerQuestion: 30, BasePoints: 10, NegativePoints: 0,
		BonusStepSeconds: 5, BonusPerStep: 1,
	},
}

var orderingLimits = Limits{
	QuestionCount:    Range{5, 20},
	TimePerQuestion:  Range{15, 120},
	BasePoints:       Range{1, 100},
	NegativePoints:   Range{0, 50},
	BonusStepSeconds: Range{1, 20},
	BonusPerStep:     Range{0, 20},
	Defaults: values{
		QuestionCount: 8, TimePerQuestion: 35, BasePoints: 10, NegativePoints: 0,
		BonusStepSeconds: 5, BonusPerStep: 1,
	},
}

// LimitsFor returns the bounds for a subject.
func LimitsFor(subject leaderboard.Subject) Limits {
	switch subject {
	case leaderboard.SubjectMaths:
		return mathsLimits
	case leaderboard.SubjectEnglish:
		return englishLimits
	default:
		return orderingLimits
	}
}

// Settings is a clamped, read-only configuration for one subject.
type Settings struct {
	subject leaderboard.Subject
	v       values
}

// Load merges raw JSON over the subject's defaults and clamps the result.
// Malformed input yields the defaults.
func Load(subject leaderboard.Subject, raw []byte) Settings {
	lim := LimitsFor(subject)
	v := lim.Defaults
	v.EnabledTopics = nil
	if len(raw) > 0 {
		parsed := lim.Defaults
		if err := json.Unmarshal(raw, &parsed); err == nil {
			v = parsed
		}
	}
	return Settings{subject: subject, v: clamp(lim, v)}
}

// Defaults returns the default configuration for a subject.
func Defaults(subject leaderboard.Subject) Settings {
	return Load(subject, nil)
}

func clamp(lim Limits, v values) values {
	v.QuestionCount = lim.QuestionCount.clamp(v.QuestionCount)
	v.TimePerQuestion = lim.TimePerQuestion.clamp(v.TimePerQuestion)
	v.BasePoints = lim.BasePoints.clamp(v.BasePoints)
	v.NegativePoints = lim.NegativePoints.clamp(v.NegativePoints)
	v.BonusStepSeconds = lim.BonusStepSeconds.clamp(v.BonusStepSeconds)
	v.BonusPerStep = lim.BonusPerStep.clamp(v.BonusPerStep)

	if !lim.Adaptive {
		v.StartDifficulty, v.MaxDifficulty, v.StreakToIncrease, v.WrongToDecrease = 0, 0, 0, 0
		v.EnabledTopics = nil
		return v
	}
	v.MaxDifficulty = lim.MaxDifficulty.clamp(v.MaxDifficulty)
	v.StartDifficulty = min(lim.StartDifficulty.clamp(v.StartDifficulty), v.MaxDifficulty)
	v.StreakToIncrease = lim.StreakToIncrease.clamp(v.StreakToIncrease)
	v.WrongToDecrease = lim.WrongToDecrease.clamp(v.WrongToDecrease)
	v.EnabledTopics = filterTopics(v.EnabledTopics)
	return v
}

func filterTopics(topics []string) []string {
	var out []string
	for _, t := range topics {
		if problemgen.IsTopic(t) && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}

func (s Settings) Subject() leaderboard.Subject { return s.subject }
func (s Settings) QuestionCount() int           { return s.v.QuestionCount }
func (s Settings) TimePerQuestion() int         { return s.v.TimePerQuestion }
func (s Settings) BasePoints() int              { return s.v.BasePoints }
func (s Settings) NegativePoints() int          { return s.v.NegativePoints }
func (s Settings) BonusStepSeconds() int        { return s.v.BonusStepSeconds }
func (s Settings) BonusPerStep() int            { return s.v.BonusPerStep }
func (s Settings) StartDifficulty() int         { return s.v.StartDifficulty }
func (s Settings) MaxDifficulty() int           { return s.v.MaxDifficulty }
func (s Settings) StreakToIncrease() int        { return s.v.StreakToIncrease }
func (s Settings) WrongToDecrease() int         { return s.v.WrongToDecrease }

// Adaptive reports whether the subject uses the difficulty controller.
func (s Settings) Adaptive() bool { return LimitsFor(s.subject).Adaptive }

// EnabledTopics returns a copy of the selected maths topics. Empty means
// the grade's full syllabus.
func (s Settings) EnabledTopics() []string { return slices.Clone(s.v.EnabledTopics) }

// MarshalJSON encodes the canonical stored form.
func (s Settings) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.v)
}

// Patch names the fields to change. Nil fields are left alone.
type Patch struct {
	QuestionCount    *int
	TimePerQuestion  *int
	BasePoints       *int
	NegativePoints   *int
	BonusStepSeconds *int
	BonusPerStep     *int
	StartDifficulty  *int
	MaxDifficulty    *int
	StreakToIncrease *int
	WrongToDecrease  *int
	EnabledTopics    *[]string
}

// Apply returns s with p applied and re-clamped.
func Apply(s Settings, p Patch) Settings {
	v := s.v
	v.EnabledTopics = slices.Clone(v.EnabledTopics)
	set := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	set(&v.QuestionCount, p.QuestionCount)
	set(&v.TimePerQuestion, p.TimePerQuestion)
	set(&v.BasePoints, p.BasePoints)
	set(&v.NegativePoints, p.NegativePoints)
	set(&v.BonusStepSeconds, p.BonusStepSeconds)
	set(&v.BonusPerStep, p.BonusPerStep)
	set(&v.StartDifficulty, p.StartDifficulty)
	set(&v.MaxDifficulty, p.MaxDifficulty)
	set(&v.StreakToIncrease, p.StreakToIncrease)
	set(&v.WrongToDecrease, p.WrongToDecrease)
	if p.EnabledTopics != nil {
		v.EnabledTopics = slices.Clone(*p.EnabledTopics)
	}
	return Settings{subject: s.subject, v: clamp(LimitsFor(s.subject), v)}
}
