package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/brainarcade/internal/logger"
	"github.com/abhisek/brainarcade/internal/store"
)

// LoggingProvider appends every call, successful or not, to the
// llm_requests table that `arcade llm` reports on.
type LoggingProvider struct {
	inner  Provider
	vendor string
	events store.EventRepo
	log    *logger.Logger
}

// WithLogging records calls made through p, labelled with vendor
// ("openrouter", "gemini", ...). log may be nil.
func WithLogging(p Provider, vendor string, events store.EventRepo, log *logger.Logger) Provider {
	if log == nil {
		log = logger.NewNop()
	}
	return &LoggingProvider{inner: p, vendor: vendor, events: events, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:    l.vendor,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	kv := []any{"vendor", ev.Provider, "model", ev.Model, "purpose", ev.Purpose, "latency_ms", ev.LatencyMs, "ok", ev.Success}
	if c := LookupCost(ev.Model); c != nil && resp != nil {
		kv = append(kv, "usd", fmt.Sprintf("%.5f", c.Cost(ev.InputTokens, ev.OutputTokens)))
	}
	l.log.Debug("llm request", kv...)

	// The call's own result wins over a failed insert.
	if recErr := l.events.AppendLLMRequest(ctx, ev); recErr != nil {
		l.log.Warn("record llm request", "error", recErr)
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }

// transcript renders req the way `arcade llm view` prints it.
func transcript(req Request) string {
	var b strings.Builder
	section := func(title, body string) { fmt.Fprintf(&b, "[%s]\n%s\n\n", title, body) }

	if req.System != "" {
		section("system", req.System)
	}
	for _, m := range req.Messages {
		section(string(m.Role), m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			section("schema: "+req.Schema.Name, string(def))
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
