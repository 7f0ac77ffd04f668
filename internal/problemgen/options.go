package problemgen

import (
	"math"
	"regexp"
	"slices"
	"strconv"
)

const (
	optionCount    = 4
	optionAttempts = 200
)

var fractionRe = regexp.MustCompile(`^(\d+)/(\d+)$`)

// BuildOptions returns exactly 4 unique options, one of which is answer,
// in random order. Distractors are near misses of the answer's kind.
func BuildOptions(answer string, r *Rand) []string {
	opts := []string{answer}
	add := func(s string) {
		if s != "" && !slices.Contains(opts, s) {
			opts = append(opts, s)
		}
	}

	if m := fractionRe.FindStringSubmatch(answer); m != nil {
		n, _ := strconv.Atoi(m[1])
		d, _ := strconv.Atoi(m[2])
		for i := 0; i < optionAttempts && len(opts) < optionCount; i++ {
			nn := clampInt(n+r.Int(-2, 2), 1, 50)
			dd := clampInt(d+r.Int(-2, 2), 2, 50)
			add(strconv.Itoa(nn) + "/" + strconv.Itoa(dd))
		}
	} else if v, err := strconv.ParseFloat(answer, 64); err == nil {
		for i := 0; i < optionAttempts && len(opts) < optionCount; i++ {
			delta := r.Int(-10, 10)
			if delta == 0 {
				continue
			}
			cand := math.Max(0, v+float64(delta))
			add(strconv.FormatFloat(math.Round(cand*100)/100, 'f', -1, 64))
		}
	}

	for len(opts) < optionCount {
		add(strconv.Itoa(r.Int(0, 999)))
	}
	Shuffle(r, opts)
	return opts
}
