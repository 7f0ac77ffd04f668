package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := anthropic.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0),
	)
	return &AnthropicProvider{client: &client, model: "claude-haiku-4-5-20251001"}
}

func anthropicReply(text, stop string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":          "msg_test",
			"type":        "message",
			"role":        "assistant",
			"content":     []map[string]any{{"type": "text", "text": text}},
			"model":       "claude-haiku-4-5-20251001",
			"stop_reason": stop,
			"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
		})
	}
}

func anthropicError(status int, kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"type":  "error",
			"error": map[string]any{"type": kind, "message": kind},
		})
	}
}

var sentenceReq = Request{
	System:    "You write short sentences for children.",
	Messages:  []Message{{Role: RoleUser, Content: "Write one sentence for grade 2."}},
	MaxTokens: 256,
}

func TestAnthropicProvider_SentenceSet(t *testing.T) {
	p := newTestAnthropicProvider(t, anthropicReply(`{"sentences":[{"text":"The cat sat.","grade":2}]}`, "end_turn"))

	req := sentenceReq
	req.Schema = sentenceSetSchema()
	resp, err := p.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 50, resp.Usage.InputTokens)
	assert.Equal(t, 80, resp.Usage.TotalTokens)
	assert.Equal(t, StopEnd, resp.StopReason)
	assert.JSONEq(t, `{"sentences":[{"text":"The cat sat.","grade":2}]}`, string(resp.Content))
}

func TestAnthropicProvider_TruncatedSet(t *testing.T) {
	p := newTestAnthropicProvider(t, anthropicReply(`{"sentences":[{"text":"The ca`, "max_tokens"))

	req := sentenceReq
	req.Schema = sentenceSetSchema()
	_, err := p.Generate(context.Background(), req)
	var maxTok *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &maxTok)
}

func TestAnthropicProvider_Errors(t *testing.T) {
	t.Run("rate limit", func(t *testing.T) {
		_, err := newTestAnthropicProvider(t, anthropicError(http.StatusTooManyRequests, "rate_limit_error")).Generate(context.Background(), sentenceReq)
		var rl *ErrRateLimit
		assert.ErrorAs(t, err, &rl)
	})
	t.Run("bad key", func(t *testing.T) {
		_, err := newTestAnthropicProvider(t, anthropicError(http.StatusUnauthorized, "authentication_error")).Generate(context.Background(), sentenceReq)
		var auth *ErrAuth
		require.ErrorAs(t, err, &auth)
		assert.Equal(t, http.StatusUnauthorized, auth.Status)
	})
	t.Run("outage", func(t *testing.T) {
		_, err := newTestAnthropicProvider(t, anthropicError(http.StatusInternalServerError, "api_error")).Generate(context.Background(), sentenceReq)
		var unavail *ErrProviderUnavailable
		assert.ErrorAs(t, err, &unavail)
	})
}

func TestResolveModel(t *testing.T) {
	assert.Equal(t, "claude-sonnet-4-20250514", resolveModel("claude-sonnet", anthropicModels))
	assert.Equal(t, "claude-haiku-4-5-20251001", resolveModel("claude-haiku", anthropicModels))
	assert.Equal(t, "claude-opus-x", resolveModel("claude-opus-x", anthropicModels), "unknown names pass through")
	assert.Equal(t, "gemini-2.0-flash", resolveModel("gemini-flash", geminiModels))
	assert.Equal(t, "gpt-4o-mini", resolveModel("gpt-4o-mini", openaiModels))
}
