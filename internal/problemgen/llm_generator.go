package problemgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/brainarcade/internal/llm"
)

// LLMSentences implements SentenceSource using an LLM provider.
type LLMSentences struct {
	provider llm.Provider
	config   Config
}

// NewLLMSentences creates a sentence source with the given provider and config.
func NewLLMSentences(provider llm.Provider, cfg Config) *LLMSentences {
	return &LLMSentences{provider: provider, config: cfg}
}

// sentenceSetOutput is the raw LLM response before validation.
type sentenceSetOutput struct {
	Questions []Sentence `json:"questions"`
}

// Sentences asks the model for a set and keeps the items that pass every
// validator. An empty result is a generation failure.
func (g *LLMSentences) Sentences(ctx context.Context, req SentenceRequest) ([]Sentence, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeSentences)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(req)},
		},
		Schema:      SentenceSetSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	items, err := decodeSentences(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: parse response: %w", ErrGeneration, err)
	}

	var out []Sentence
	for i := range items {
		if g.valid(&items[i], req) {
			out = append(out, items[i])
		}
		if req.Count > 0 && len(out) == req.Count {
			break
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no valid sentences in response", ErrGeneration)
	}
	return out, nil
}

func (g *LLMSentences) valid(s *Sentence, req SentenceRequest) bool {
	for _, v := range g.config.Validators {
		if v.Validate(s, req) != nil {
			return false
		}
	}
	return true
}

// decodeSentences accepts {"questions":[...]}, a bare array, or either of
// those wrapped in a JSON string with code fences.
func decodeSentences(raw json.RawMessage) ([]Sentence, error) {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		raw = json.RawMessage(stripCodeFences(text))
	}

	var obj sentenceSetOutput
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Questions != nil {
		return obj.Questions, nil
	}
	var arr []Sentence
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil, err
	}
	return arr, nil
}
