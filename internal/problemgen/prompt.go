package problemgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You create English word-ordering exercises for school children.

Rules:
- Each item is one grammatically correct sentence and the list of its words.
- Words must contain every word of the sentence exactly once, without punctuation.
- Use age-appropriate, friendly vocabulary. No names of real people, no brands.
- Do not repeat a sentence within the set.
- Return only JSON.`

// buildUserMessage describes the set wanted for a request.
func buildUserMessage(req SentenceRequest) string {
	band := BandFor(req.Grade)

	var b strings.Builder
	fmt.Fprintf(&b, "Grade: %d\n", req.Grade)
	fmt.Fprintf(&b, "Number of sentences: %d\n", req.Count)
	fmt.Fprintf(&b, "Words per sentence: %d-%d\n", band.MinWords, band.MaxWords)
	fmt.Fprintf(&b, "Style: %s\n", band.Guidance)
	b.WriteString(`Respond as {"questions":[{"answer":"...","words":["..."]}]}`)
	return b.String()
}

// stripCodeFences removes a surrounding markdown code fence, which some
// models add even when asked for bare JSON.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
