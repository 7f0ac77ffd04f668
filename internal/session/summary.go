package session

import (
	"slices"
	"time"

	"github.com/abhisek/brainarcade/internal/leaderboard"
)

// Summary holds the data displayed on the result screen.
type Summary struct {
	Player     leaderboard.Player
	Score      int
	Attempted  int
	Correct    int
	Accuracy   float64
	TotalTime  time.Duration
	AvgSeconds float64
	FinalTier  int
	Mistakes   []Mistake
}

// BuildSummary creates a Summary from the session state.
func BuildSummary(p leaderboard.Player, st *State) Summary {
	sum := Summary{
		Player:    p,
		Score:     st.Score,
		Attempted: st.Attempted,
		Correct:   st.Correct,
		TotalTime: st.TotalTime,
		FinalTier: st.Tier,
		Mistakes:  slices.Clone(st.Mistakes),
	}
	if st.Attempted > 0 {
		sum.Accuracy = float64(st.Correct) / float64(st.Attempted)
		sum.AvgSeconds = st.TotalTime.Seconds() / float64(st.Attempted)
	}
	return sum
}
