package problemgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertOptions(t *testing.T, answer string, opts []string) {
	t.Helper()
	require.Len(t, opts, 4, "options for %q", answer)
	seen := map[string]bool{}
	hits := 0
	for _, o := range opts {
		if seen[o] {
			t.Errorf("duplicate option %q in %v", o, opts)
		}
		seen[o] = true
		if o == answer {
			hits++
		}
	}
	if hits != 1 {
		t.Errorf("answer %q appears %d times in %v", answer, hits, opts)
	}
}

func TestBuildOptionsKinds(t *testing.T) {
	r := NewSeededRand(11, 12)
	for _, answer := range []string{"0", "1", "42", "7.25", "0.5", "3/5", "1/2", "49/50", "blue"} {
		for range 50 {
			assertOptions(t, answer, BuildOptions(answer, r))
		}
	}
}

func TestBuildOptionsNumericDistractorsAreNear(t *testing.T) {
	r := NewSeededRand(13, 14)
	for range 100 {
		for _, o := range BuildOptions("500", r) {
			n := atoi(t, o)
			assert.GreaterOrEqual(t, n, 490)
			assert.LessOrEqual(t, n, 510)
		}
	}
}

func TestBuildOptionsFractionsStayFractions(t *testing.T) {
	r := NewSeededRand(15, 16)
	for range 100 {
		for _, o := range BuildOptions("4/7", r) {
			assert.Regexp(t, `^\d+/\d+$`, o)
		}
	}
}

func TestBuildOptionsNeverNegative(t *testing.T) {
	r := NewSeededRand(17, 18)
	for range 100 {
		for _, o := range BuildOptions("2", r) {
			assert.NotContains(t, o, "-")
		}
	}
}

func TestBuildOptionsPositionVaries(t *testing.T) {
	r := NewSeededRand(19, 20)
	positions := map[int]bool{}
	for range 200 {
		for i, o := range BuildOptions("12", r) {
			if o == "12" {
				positions[i] = true
			}
		}
	}
	assert.Len(t, positions, 4)
}
