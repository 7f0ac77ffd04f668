package session

import "github.com/abhisek/brainarcade/internal/settings"

// Scorer turns one answer into a point delta.
type Scorer struct {
	Base        int
	Negative    int
	StepSeconds int
	PerStep     int
}

func NewScorer(s settings.Settings) Scorer {
	return Scorer{
		Base:        s.BasePoints(),
		Negative:    s.NegativePoints(),
		StepSeconds: s.BonusStepSeconds(),
		PerStep:     s.BonusPerStep(),
	}
}

// Bonus is floor(timeLeft/StepSeconds) * PerStep.
func (sc Scorer) Bonus(timeLeft int) int {
	if sc.StepSeconds <= 0 || timeLeft <= 0 {
		return 0
	}
	return timeLeft / sc.StepSeconds * sc.PerStep
}

// Score returns the points for an answer: base plus bonus when correct,
// minus the penalty otherwise.
func (sc Scorer) Score(correct bool, timeLeft int) int {
	if correct {
		return sc.Base + sc.Bonus(timeLeft)
	}
	return -sc.Negative
}
