package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenRouterProvider(t *testing.T) {
	t.Run("model passes through", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{
			APIKey: "sk-or-test",
			Model:  "mistralai/mistral-7b-instruct",
		})
		require.NoError(t, err)
		assert.Equal(t, "mistralai/mistral-7b-instruct", p.ModelID())
		assert.True(t, p.jsonObject)
	})

	t.Run("empty API key", func(t *testing.T) {
		_, err := NewOpenRouterProvider(OpenRouterConfig{Model: "mistralai/mistral-7b-instruct"})
		assert.Error(t, err)
	})

	t.Run("strict schema", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "k", Model: "m", StrictSchema: true})
		require.NoError(t, err)
		assert.False(t, p.jsonObject)
	})
}

func TestOpenRouterProvider_JSONObjectMode(t *testing.T) {
	var gotFormat map[string]any
	var gotTitle string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTitle = r.Header.Get("X-Title")
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotFormat, _ = body["response_format"].(map[string]any)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":    "gen-1",
			"model": "mistralai/mistral-7b-instruct",
			"choices": []map[string]any{{
				"index": 0,
				"message": map[string]any{
					"role":    "assistant",
					"content": "```json\n{\"sentences\":[{\"text\":\"Asha reads.\",\"grade\":1}]}\n```",
				},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 12, "completion_tokens": 8, "total_tokens": 20},
		})
	}))
	t.Cleanup(srv.Close)

	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:  "sk-or-test",
		Model:   "mistralai/mistral-7b-instruct",
		BaseURL: srv.URL + "/v1",
	})
	require.NoError(t, err)

	resp, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
		Schema:   sentenceSetSchema(),
	})
	require.NoError(t, err)
	assert.Equal(t, "json_object", gotFormat["type"])
	assert.Equal(t, "Brain Arcade", gotTitle)
	assert.JSONEq(t, `{"sentences":[{"text":"Asha reads.","grade":1}]}`, string(resp.Content))
	assert.Equal(t, 12, resp.Usage.InputTokens)
}
