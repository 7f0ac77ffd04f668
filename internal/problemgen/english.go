package problemgen

import (
	"context"
	"fmt"
	"strings"
)

// SentenceBand describes the sentences suited to a range of grades.
type SentenceBand struct {
	MinWords, MaxWords int
	Guidance           string
}

// BandFor returns the sentence band for a grade.
func BandFor(grade int) SentenceBand {
	switch {
	case grade <= 2:
		return SentenceBand{3, 4, "very simple sentences with common words"}
	case grade <= 4:
		return SentenceBand{4, 5, "simple sentences with everyday vocabulary"}
	case grade <= 6:
		return SentenceBand{5, 7, "compound sentences joined with and, but or because"}
	default:
		return SentenceBand{5, 12, "grammar practice with varied tenses and questions"}
	}
}

var sentenceBank = [][]string{
	{
		"The cat is sleeping", "I like red apples", "We play outside", "The sun is hot",
		"My dog can run", "She has a ball", "Birds can fly", "I love my mom",
		"The fish swims fast", "He reads a book",
	},
	{
		"The bird sings every morning", "We go to school", "My sister likes ice cream",
		"The children play football", "I drink milk daily", "The tree is very tall",
		"Dad drives a blue car", "She paints a flower", "They visit the zoo", "The baby is laughing",
	},
	{
		"I was hungry so I ate", "She likes tea but I like coffee",
		"We stayed home because it rained", "The dog barked and the cat ran",
		"He studied hard and passed the test", "It was late but we kept playing",
		"Mom cooked rice and I set plates", "The bus came late so we walked",
		"I wanted to swim but the pool closed", "She smiled because she won",
	},
	{
		"Have you finished your homework yet?", "She had already left when we arrived.",
		"Where will you go next summer?", "They have been waiting for an hour.",
		"If it rains, we will stay inside.", "The letter was written by my grandfather.",
		"Did you see the comet last night?", "He will have completed the project by Friday.",
		"Why were the lights switched off?", "We were playing chess when the bell rang.",
	},
}

func bankFor(grade int) []string {
	switch {
	case grade <= 2:
		return sentenceBank[0]
	case grade <= 4:
		return sentenceBank[1]
	case grade <= 6:
		return sentenceBank[2]
	default:
		return sentenceBank[3]
	}
}

// TemplateSentences serves sentence sets from a built-in bank.
type TemplateSentences struct {
	rng *Rand
}

func NewTemplateSentences(rng *Rand) *TemplateSentences {
	if rng == nil {
		rng = NewRand()
	}
	return &TemplateSentences{rng: rng}
}

func (t *TemplateSentences) Sentences(_ context.Context, req SentenceRequest) ([]Sentence, error) {
	if req.Count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive", ErrGeneration)
	}
	bank := append([]string(nil), bankFor(req.Grade)...)
	Shuffle(t.rng, bank)

	out := make([]Sentence, 0, req.Count)
	for i := range req.Count {
		if i > 0 && i%len(bank) == 0 {
			Shuffle(t.rng, bank)
		}
		answer := bank[i%len(bank)]
		out = append(out, Sentence{Answer: answer, Words: SentenceWords(answer)})
	}
	return out, nil
}

// SentenceWords splits a sentence into the tokens a player orders, with
// punctuation removed.
func SentenceWords(answer string) []string {
	return strings.Fields(NormalizeSentenceCase(answer, false))
}

// SentenceQuestion turns a sentence into an ordering question.
func SentenceQuestion(r *Rand, s Sentence, grade int) *Question {
	words := s.Words
	if len(words) == 0 {
		words = SentenceWords(s.Answer)
	}
	steps := strings.Fields(NormalizeSentenceCase(s.Answer, false))
	return &Question{
		Topic:  "sentence",
		Text:   "Arrange the words to make a correct sentence",
		Format: FormatOrdering,
		Answer: s.Answer,
		Steps:  steps,
		Pieces: shuffled(r, words),
		Grade:  grade,
	}
}
