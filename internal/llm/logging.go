package llm

import (
	"context"
	"fmt"
	"iter"
	"os"
	"strings"
	"time"

	"github.com/abhisek/ga4tutor/internal/store"
)

// LoggingProvider is a decorator that records every LLM request as an event.
type LoggingProvider struct {
	inner     Provider
	provider  string
	eventRepo store.EventRepo
}

// WithLogging wraps a Provider with event logging. provider is the
// configured backend name ("gemini", "anthropic", ...).
func WithLogging(p Provider, provider string, repo store.EventRepo) Provider {
	return &LoggingProvider{inner: p, provider: provider, eventRepo: repo}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	data := l.eventData(ctx, req, start, err)
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
		data.ResponseBody = resp.Text
	}
	l.record(ctx, data)

	return resp, err
}

// Stream records one event once the sequence finishes, stops early, or
// fails. The response body is whatever text was delivered.
func (l *LoggingProvider) Stream(ctx context.Context, req Request) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		start := time.Now()
		var text strings.Builder
		var streamErr error

		defer func() {
			data := l.eventData(ctx, req, start, streamErr)
			data.ResponseBody = text.String()
			l.record(ctx, data)
		}()

		for fragment, err := range l.inner.Stream(ctx, req) {
			if err != nil {
				streamErr = err
				yield("", err)
				return
			}
			text.WriteString(fragment)
			if !yield(fragment, nil) {
				return
			}
		}
	}
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

func (l *LoggingProvider) eventData(ctx context.Context, req Request, start time.Time, err error) store.LLMRequestEventData {
	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}
	return data
}

// record logs the event but never fails the request if logging fails.
func (l *LoggingProvider) record(ctx context.Context, data store.LLMRequestEventData) {
	if l.eventRepo == nil {
		return
	}
	// The caller's context may already be cancelled (stream abandoned).
	if logErr := l.eventRepo.AppendLLMRequest(context.WithoutCancel(ctx), data); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log LLM request event: %v\n", logErr)
	}
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		b.WriteString(fmt.Sprintf("[%s]\n", m.Role))
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Temperature > 0 || req.TopP > 0 || req.TopK > 0 {
		b.WriteString(fmt.Sprintf("[params] temperature=%g top_p=%g top_k=%d\n", req.Temperature, req.TopP, req.TopK))
	}

	return b.String()
}
