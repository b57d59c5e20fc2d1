package llm

import (
	"context"
	"iter"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
// Generate returns Text; Stream yields Fragments (or Text as a single
// fragment when Fragments is empty) and then StreamErr, if set.
type MockResponse struct {
	Text      string
	Fragments []string
	Usage     Usage
	Err       error
	StreamErr error
}

// MockProvider is a deterministic Provider for testing.
// It returns canned responses in FIFO order and records all requests.
// Generate and Stream share the same queue.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// next records req and pops the next canned response. ok is false when
// the queue is empty.
func (m *MockProvider) next(req Request) (MockResponse, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		return MockResponse{}, false
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp, true
}

// Generate returns the next canned response or ErrProviderUnavailable if
// the queue is empty.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	resp, ok := m.next(req)
	if !ok {
		return nil, &ErrProviderUnavailable{Err: nil}
	}
	if resp.Err != nil {
		return nil, resp.Err
	}

	text := resp.Text
	if text == "" {
		for _, f := range resp.Fragments {
			text += f
		}
	}

	return &Response{
		Text:       text,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// Stream yields the next canned response fragment by fragment. The
// request is recorded when iteration starts, not when Stream is called.
func (m *MockProvider) Stream(_ context.Context, req Request) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		resp, ok := m.next(req)
		if !ok {
			yield("", &ErrProviderUnavailable{Err: nil})
			return
		}
		if resp.Err != nil {
			yield("", resp.Err)
			return
		}

		fragments := resp.Fragments
		if len(fragments) == 0 && resp.Text != "" {
			fragments = []string{resp.Text}
		}
		for _, f := range fragments {
			if !yield(f, nil) {
				return
			}
		}
		if resp.StreamErr != nil {
			yield("", resp.StreamErr)
		}
	}
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate and Stream calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastCall returns the most recent request, or false if none was made.
func (m *MockProvider) LastCall() (Request, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return Request{}, false
	}
	return m.Calls[len(m.Calls)-1], true
}
