package llm

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProvider_QueueOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"sentences":["a"]}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"sentences":["b"]}`)},
	)

	first, err := mock.Generate(context.Background(), Request{System: "grade 3", Messages: []Message{{Role: RoleUser, Content: "first"}}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"sentences":["a"]}`, string(first.Content))
	assert.Equal(t, 10, first.Usage.InputTokens)
	assert.Equal(t, "end", first.StopReason)

	second, err := mock.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"sentences":["b"]}`, string(second.Content))

	require.Equal(t, 2, mock.CallCount())
	assert.Equal(t, "grade 3", mock.Calls[0].System)
}

func TestMockProvider_Errors(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{}})

	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	assert.ErrorAs(t, err, &rl)

	_, err = mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail, "empty queue")

	mock.AddResponse(MockResponse{Content: json.RawMessage(`{}`)})
	_, err = mock.Generate(context.Background(), Request{})
	assert.NoError(t, err)
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", PurposeFrom(ctx))
	assert.Equal(t, "unknown", PurposeFrom(WithPurpose(ctx, "")))
	assert.Equal(t, "sentence-gen", PurposeFrom(WithPurpose(ctx, PurposeSentences)))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, "ARCADE_ANTHROPIC_API_KEY"},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}}, ""},
		{"openai without key", Config{Provider: "openai"}, "ARCADE_OPENAI_API_KEY"},
		{"openai with key", Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}}, ""},
		{"gemini without key", Config{Provider: "gemini"}, "ARCADE_GEMINI_API_KEY"},
		{"openrouter without key", Config{Provider: "openrouter"}, "ARCADE_OPENROUTER_API_KEY"},
		{"openrouter with key", Config{Provider: "openrouter", OpenRouter: OpenRouterConfig{APIKey: "sk-or"}}, ""},
		{"mock needs no key", Config{Provider: "mock"}, ""},
		{"unknown provider", Config{Provider: "unknown"}, "unknown LLM provider"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("ARCADE_LLM_PROVIDER", "gemini")
	t.Setenv("ARCADE_GEMINI_API_KEY", "g-key")
	t.Setenv("ARCADE_LLM_TIMEOUT", "5s")

	cfg := ConfigFromEnv()
	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, "g-key", cfg.Gemini.APIKey)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "mistralai/mistral-7b-instruct", cfg.OpenRouter.Model, "defaults survive")
}

func clearVendorKeys(t *testing.T) {
	t.Helper()
	for _, k := range []string{"OPENROUTER_API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY"} {
		t.Setenv(k, "")
		t.Setenv(EnvPrefix+k, "")
	}
	t.Setenv(EnvPrefix+"LLM_PROVIDER", "")
}

func TestDiscoverConfig_PrefersOpenRouter(t *testing.T) {
	clearVendorKeys(t)
	t.Setenv("OPENROUTER_API_KEY", "or-key")
	t.Setenv("OPENAI_API_KEY", "oa-key")

	cfg, ok := DiscoverConfig()
	require.True(t, ok)
	assert.Equal(t, "openrouter", cfg.Provider)
	assert.Equal(t, "or-key", cfg.OpenRouter.APIKey)
}

func TestNewProviderFromEnv_NotConfigured(t *testing.T) {
	clearVendorKeys(t)

	_, err := NewProviderFromEnv(context.Background(), nil, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())
}

func TestWithTimeout_SetsDeadline(t *testing.T) {
	var sawDeadline bool
	inner := providerFunc(func(ctx context.Context, _ Request) (*Response, error) {
		_, sawDeadline = ctx.Deadline()
		return &Response{}, nil
	})

	_, err := WithTimeout(inner, time.Second).Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.True(t, sawDeadline)
}

type providerFunc func(ctx context.Context, req Request) (*Response, error)

func (f providerFunc) Generate(ctx context.Context, req Request) (*Response, error) {
	return f(ctx, req)
}
func (f providerFunc) ModelID() string { return "func" }

func TestMockProvider_Truncation(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"sentences":[`), Stop: StopMaxTokens},
		MockResponse{Content: json.RawMessage(`partial`), Stop: StopMaxTokens},
	)

	_, err := mock.Generate(context.Background(), Request{Schema: sentenceSetSchema()})
	var maxTok *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &maxTok)

	resp, err := mock.Generate(context.Background(), Request{})
	require.NoError(t, err, "free text may stop at the limit")
	assert.Equal(t, StopMaxTokens, resp.StopReason)
}
