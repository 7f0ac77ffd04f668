package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one canned reply. Stop defaults to StopEnd; set it to
// StopMaxTokens to simulate a truncated set.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Stop    string
	Err     error
}

// MockProvider replays canned replies in order and records every request.
// Content is returned unvalidated so callers' own parsing gets exercised.
// The "mock" provider setting selects an empty one.
type MockProvider struct {
	mu      sync.Mutex
	pending []MockResponse
	Calls   []Request
}

func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{pending: responses}
}

// Generate pops the next reply; an empty queue looks like an outage.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if len(m.pending) == 0 {
		return nil, &ErrProviderUnavailable{}
	}
	next := m.pending[0]
	m.pending = m.pending[1:]

	switch {
	case next.Err != nil:
		return nil, next.Err
	case next.Stop == StopMaxTokens && req.Schema != nil:
		return nil, &ErrMaxTokensExceeded{Content: next.Content}
	}
	stop := next.Stop
	if stop == "" {
		stop = StopEnd
	}
	return &Response{Content: next.Content, Usage: next.Usage, Model: m.ModelID(), StopReason: stop}, nil
}

func (m *MockProvider) ModelID() string { return "mock" }

// AddResponse queues another reply.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	m.pending = append(m.pending, resp)
	m.mu.Unlock()
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
