package leaderboard

import (
	"sort"
	"time"
)

// View limits.
const (
	PlayerLimit   = 500
	LeaderLimit   = 200
	ChampionCount = 3
	OverallLimit  = 70
)

// Key is the unique identity of a weekly record.
type Key struct {
	Name    string
	Grade   int
	Subject Subject
	Week    string
}

// Record is one player's cumulative totals for a week.
type Record struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Grade       int       `json:"grade"`
	Subject     Subject   `json:"subject"`
	Week        string    `json:"week"`
	Score       int       `json:"score"`
	Attempted   int       `json:"attempted"`
	Correct     int       `json:"correct"`
	TotalTimeMs int64     `json:"total_time_ms"`
	LastPlayed  string    `json:"last_played"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Key returns the record's composite key.
func (r Record) Key() Key {
	return Key{Name: r.Name, Grade: r.Grade, Subject: r.Subject, Week: r.Week}
}

// AvgSeconds is the mean answer time per attempted question.
func (r Record) AvgSeconds() float64 {
	if r.Attempted == 0 {
		return 0
	}
	return float64(r.TotalTimeMs) / float64(r.Attempted) / 1000
}

// Delta is what one finished session adds to a record.
type Delta struct {
	Score       int
	Attempted   int
	Correct     int
	TotalTimeMs int64
}

// Less orders records by score desc, correct desc, attempted desc, then
// total time asc. Name asc keeps equal rows deterministic.
func Less(a, b Record) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Correct != b.Correct {
		return a.Correct > b.Correct
	}
	if a.Attempted != b.Attempted {
		return a.Attempted > b.Attempted
	}
	if a.TotalTimeMs != b.TotalTimeMs {
		return a.TotalTimeMs < b.TotalTimeMs
	}
	return a.Name < b.Name
}

// Sort orders records in place by Less.
func Sort(records []Record) {
	sort.SliceStable(records, func(i, j int) bool { return Less(records[i], records[j]) })
}

// Board is the set of read views refreshed after a game is recorded.
type Board struct {
	Subject   Subject  `json:"subject"`
	Week      string   `json:"week"`
	Players   []string `json:"players"`
	Leaders   []Record `json:"leaders"`
	Champions []Record `json:"champions"`
}

// champions returns the first ChampionCount rows of an already sorted list.
func champions(leaders []Record) []Record {
	n := min(len(leaders), ChampionCount)
	out := make([]Record, n)
	copy(out, leaders[:n])
	return out
}
