// Package llm generates English sentence sets through hosted language
// models. Vendor adapters sit behind Provider and are wrapped with timeout,
// retry and request-logging decorators by NewProvider.
package llm

import (
	"context"
	"encoding/json"
)

type Provider interface {
	// Generate returns the model's reply. With req.Schema set the reply is
	// JSON already validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

// Request is a single-turn prompt: one system prompt and, for every caller
// today, one user message.
type Request struct {
	System   string
	Messages []Message

	// Schema asks for structured output; nil means free text.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]; zero leaves the vendor default.
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema, e.g. "sentence-set".
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the ID that actually served the call, which may differ
	// from the configured alias.
	Model string

	// StopReason is StopEnd or StopMaxTokens.
	StopReason string
}

// Usage is the token count for one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// finish builds the Response every vendor adapter returns. A truncated
// reply is reported as *ErrMaxTokensExceeded before schema validation so a
// half-written sentence set is not mistaken for a malformed one.
func finish(req Request, content json.RawMessage, stop string, usage Usage, model string) (*Response, error) {
	if stop == StopMaxTokens && req.Schema != nil {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stop}, nil
}
