package llm

import (
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

	// Sent so calls are attributed to the app on the OpenRouter dashboard.
	openRouterTitle   = "Brain Arcade"
	openRouterReferer = "https://github.com/abhisek/brainarcade"
)

// OpenRouterProvider reuses the OpenAI client against OpenRouter. Model IDs
// ("mistralai/mistral-7b-instruct") are sent as given. Most hosted models
// only honour JSON mode, so strict schemas are opt-in.
type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}
	base := cfg.BaseURL
	if base == "" {
		base = defaultOpenRouterBaseURL
	}

	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = base
	config.HTTPClient = &http.Client{Transport: attribution{next: http.DefaultTransport}}

	return &OpenRouterProvider{OpenAIProvider: &OpenAIProvider{
		client:     openai.NewClientWithConfig(config),
		model:      cfg.Model,
		jsonObject: !cfg.StrictSchema,
	}}, nil
}

// attribution adds OpenRouter's optional app headers to every request.
type attribution struct{ next http.RoundTripper }

func (a attribution) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("HTTP-Referer", openRouterReferer)
	req.Header.Set("X-Title", openRouterTitle)
	return a.next.RoundTrip(req)
}
