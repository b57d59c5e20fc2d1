package chat

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"sync"
	"time"

	"github.com/abhisek/ga4tutor/internal/lessons"
	"github.com/abhisek/ga4tutor/internal/llm"
)

// Registry holds at most one live session per kind. It is owned by the
// application and safe for concurrent use.
type Registry struct {
	factory ProviderFactory
	configs map[Kind]SessionConfig

	// PrimeTimeout bounds the synchronous priming exchange. Zero means
	// no extra deadline.
	PrimeTimeout time.Duration

	mu       sync.Mutex
	sessions map[Kind]*Session

	primeMu  sync.Mutex
	primed   bool
	tried    bool
	greeting string
}

// NewRegistry creates a registry that builds sessions from configs using
// factory.
func NewRegistry(factory ProviderFactory, configs map[Kind]SessionConfig) *Registry {
	return &Registry{
		factory:  factory,
		configs:  configs,
		sessions: make(map[Kind]*Session),
	}
}

// Ensure creates the session for kind if it does not exist yet. Calling
// it again after success does nothing. Failures are *SessionInitError.
func (r *Registry) Ensure(ctx context.Context, kind Kind) error {
	_, err := r.session(ctx, kind)
	return err
}

// Session returns the live session for kind, or nil.
func (r *Registry) Session(kind Kind) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[kind]
}

func (r *Registry) session(ctx context.Context, kind Kind) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[kind]; ok {
		return s, nil
	}

	cfg, ok := r.configs[kind]
	if !ok {
		return nil, &SessionInitError{Kind: kind, Err: fmt.Errorf("unknown session kind")}
	}
	p, err := r.factory(ctx, cfg)
	if err != nil {
		return nil, &SessionInitError{Kind: kind, Err: err}
	}

	s := newSession(cfg, p)
	r.sessions[kind] = s
	return s, nil
}

// SendAndStream sends text on the session for kind, creating it first
// if needed, and yields the reply fragment by fragment. A failure is the
// last element: *SessionInitError when the session could not be created,
// *StreamError otherwise. Nothing is retried, except that a lesson send
// after a failed Prime primes the lesson session first.
func (r *Registry) SendAndStream(ctx context.Context, kind Kind, text string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if kind == KindLesson {
			if err := r.reprime(ctx); err != nil {
				yield("", err)
				return
			}
		}
		s, err := r.session(ctx, kind)
		if err != nil {
			yield("", err)
			return
		}
		for fragment, err := range s.Send(ctx, text) {
			if !yield(fragment, err) {
				return
			}
		}
	}
}

// Prime creates the lesson session and performs the one synchronous
// bootstrap exchange, returning the full reply. An empty reply is
// replaced by the fallback greeting. Later calls return the first
// greeting without contacting the model again.
func (r *Registry) Prime(ctx context.Context) (string, error) {
	r.primeMu.Lock()
	defer r.primeMu.Unlock()
	return r.prime(ctx)
}

// reprime repeats a priming exchange that was attempted and failed.
func (r *Registry) reprime(ctx context.Context) error {
	r.primeMu.Lock()
	defer r.primeMu.Unlock()
	if r.primed || !r.tried {
		return nil
	}
	_, err := r.prime(ctx)
	return err
}

// prime must be called with primeMu held.
func (r *Registry) prime(ctx context.Context) (string, error) {
	if r.primed {
		return r.greeting, nil
	}
	r.tried = true

	s, err := r.session(ctx, KindLesson)
	if err != nil {
		return "", err
	}

	if r.PrimeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.PrimeTimeout)
		defer cancel()
	}

	reply, err := s.generate(ctx, llm.PurposeLessonPrime, lessons.BootstrapMessage)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(reply) == "" {
		reply = lessons.FallbackGreeting
	}

	s.commit(lessons.BootstrapMessage, reply)
	r.primed = true
	r.greeting = reply
	return reply, nil
}
