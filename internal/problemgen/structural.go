package problemgen

import (
	"fmt"
	"slices"
	"strings"
)

// StructuralValidator checks that required fields are present and within
// length limits.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(s *Sentence, _ SentenceRequest) *ValidationError {
	if strings.TrimSpace(s.Answer) == "" {
		return &ValidationError{Validator: v.Name(), Message: "answer is empty"}
	}
	if len(s.Answer) > 200 {
		return &ValidationError{Validator: v.Name(), Message: "answer exceeds 200 characters"}
	}
	if len(s.Words) == 0 {
		return &ValidationError{Validator: v.Name(), Message: "words is empty"}
	}
	for _, w := range s.Words {
		if strings.TrimSpace(w) == "" {
			return &ValidationError{Validator: v.Name(), Message: "words contains a blank entry"}
		}
	}
	return nil
}

// WordsMatchValidator checks that the words are exactly the answer's words
// in some order.
type WordsMatchValidator struct{}

func (v *WordsMatchValidator) Name() string { return "words-match" }

func (v *WordsMatchValidator) Validate(s *Sentence, _ SentenceRequest) *ValidationError {
	want := strings.Fields(NormalizeSentence(s.Answer))
	got := strings.Fields(NormalizeSentence(strings.Join(s.Words, " ")))
	slices.Sort(want)
	slices.Sort(got)
	if !slices.Equal(want, got) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("words %v do not spell %q", s.Words, s.Answer),
		}
	}
	return nil
}

// BandLengthValidator checks the word count against the grade's band.
type BandLengthValidator struct{}

func (v *BandLengthValidator) Name() string { return "band-length" }

func (v *BandLengthValidator) Validate(s *Sentence, req SentenceRequest) *ValidationError {
	band := BandFor(req.Grade)
	n := len(strings.Fields(NormalizeSentence(s.Answer)))
	if n < band.MinWords || n > band.MaxWords+2 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("%d words, grade %d expects %d-%d", n, req.Grade, band.MinWords, band.MaxWords),
		}
	}
	return nil
}
