package chat

import (
	"context"
	"iter"
	"strings"
	"sync"

	"github.com/abhisek/ga4tutor/internal/llm"
)

// Session is a live conversation with the remote model. It owns the
// history the model sees on every turn.
type Session struct {
	cfg      SessionConfig
	provider llm.Provider

	mu      sync.Mutex
	history []llm.Message
}

func newSession(cfg SessionConfig, p llm.Provider) *Session {
	return &Session{cfg: cfg, provider: p}
}

// Kind returns the session kind.
func (s *Session) Kind() Kind { return s.cfg.Kind }

// History returns a copy of the completed turns.
func (s *Session) History() []llm.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]llm.Message, len(s.history))
	copy(out, s.history)
	return out
}

// messagesWith returns the history followed by a new user message.
func (s *Session) messagesWith(text string) []llm.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := make([]llm.Message, 0, len(s.history)+1)
	msgs = append(msgs, s.history...)
	return append(msgs, llm.Message{Role: llm.RoleUser, Content: text})
}

func (s *Session) commit(user, reply string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history,
		llm.Message{Role: llm.RoleUser, Content: user},
		llm.Message{Role: llm.RoleAssistant, Content: reply},
	)
}

// Send streams the reply to text. The turn joins the history only once
// the reply has been fully delivered; failed or abandoned turns leave it
// untouched.
func (s *Session) Send(ctx context.Context, text string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		ctx := llm.WithPurpose(ctx, s.cfg.Purpose)
		req := s.cfg.request(s.messagesWith(text))

		var reply strings.Builder
		for fragment, err := range s.provider.Stream(ctx, req) {
			if err != nil {
				yield("", &StreamError{Kind: s.cfg.Kind, Err: err})
				return
			}
			reply.WriteString(fragment)
			if !yield(fragment, nil) {
				return
			}
		}
		s.commit(text, reply.String())
	}
}

// generate performs one non-streamed turn under purpose.
func (s *Session) generate(ctx context.Context, purpose, text string) (string, error) {
	ctx = llm.WithPurpose(ctx, purpose)
	resp, err := s.provider.Generate(ctx, s.cfg.request(s.messagesWith(text)))
	if err != nil {
		return "", &StreamError{Kind: s.cfg.Kind, Err: err}
	}
	return resp.Text, nil
}
