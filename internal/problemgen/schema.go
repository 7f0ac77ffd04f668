package problemgen

import "github.com/abhisek/brainarcade/internal/llm"

// SentenceSetSchema defines the JSON schema for sentence set responses.
var SentenceSetSchema = &llm.Schema{
	Name:        "sentence-set",
	Description: "A set of English sentences with their words for a word-ordering game",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"answer": map[string]any{
							"type":        "string",
							"description": "The correct sentence",
						},
						"words": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "The words of the sentence without punctuation, in any order",
						},
					},
					"required":             []any{"answer", "words"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
