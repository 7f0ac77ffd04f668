package session

// Difficulty adapts the question tier to recent answers. The tier always
// stays in [1, max].
type Difficulty struct {
	tier   int
	max    int
	streak int

	streakToIncrease int
	wrongToDecrease  int
}

// NewDifficulty returns a controller starting at start, clamped to [1, maxTier].
// A streak threshold below 1 is treated as 1; a wrongToDecrease of 0 turns
// the drop off.
func NewDifficulty(start, maxTier, streakToIncrease, wrongToDecrease int) *Difficulty {
	maxTier = atLeast(maxTier, 1)
	return &Difficulty{
		tier:             min(atLeast(start, 1), maxTier),
		max:              maxTier,
		streakToIncrease: atLeast(streakToIncrease, 1),
		wrongToDecrease:  wrongToDecrease,
	}
}

// Correct records a correct answer. Reaching the streak threshold raises
// the tier by one and resets the streak.
func (d *Difficulty) Correct() {
	d.streak++
	if d.streak >= d.streakToIncrease {
		d.tier = min(d.tier+1, d.max)
		d.streak = 0
	}
}

// Wrong records a wrong or timed-out answer: the streak resets and the
// tier drops by one. wrongToDecrease only switches the drop on; it is
// not a count.
func (d *Difficulty) Wrong() {
	d.streak = 0
	if d.wrongToDecrease >= 1 {
		d.tier = max(d.tier-1, 1)
	}
}

func (d *Difficulty) Tier() int   { return d.tier }
func (d *Difficulty) Streak() int { return d.streak }
func (d *Difficulty) Max() int    { return d.max }

func atLeast(v, floor int) int {
	if v < floor {
		return floor
	}
	return v
}
