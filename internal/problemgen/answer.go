package problemgen

import (
	"regexp"
	"slices"
	"strings"
)

var (
	punctRe = regexp.MustCompile(`[^\w\s']`)
	spaceRe = regexp.MustCompile(`\s+`)
)

// NormalizeSentence lower-cases s, strips punctuation other than
// apostrophes and collapses whitespace.
func NormalizeSentence(s string) string {
	return NormalizeSentenceCase(s, true)
}

// NormalizeSentenceCase is NormalizeSentence with optional lower-casing.
func NormalizeSentenceCase(s string, lower bool) string {
	if lower {
		s = strings.ToLower(s)
	}
	s = punctRe.ReplaceAllString(s, "")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// CheckChoice reports whether the chosen option is the answer.
func CheckChoice(choice string, q *Question) bool {
	return choice == q.Answer
}

// CheckOrder reports whether got matches want element by element.
func CheckOrder(got, want []string) bool {
	return slices.Equal(got, want)
}

// CheckSentence reports whether the ordered words read as the answer
// sentence once case, punctuation and spacing are ignored.
func CheckSentence(words []string, answer string) bool {
	return NormalizeSentence(strings.Join(words, " ")) == NormalizeSentence(answer)
}
