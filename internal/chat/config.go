package chat

import (
	"context"
	"fmt"

	"github.com/abhisek/ga4tutor/internal/lessons"
	"github.com/abhisek/ga4tutor/internal/llm"
	"github.com/abhisek/ga4tutor/internal/store"
)

// Kind identifies one of the two remote conversations.
type Kind string

const (
	KindLesson Kind = "lesson"
	KindQA     Kind = "qa"
)

// Default models per kind. They are friendly names understood by the
// Gemini and OpenRouter providers.
const (
	DefaultLessonModel = "gemini-flash"
	DefaultQAModel     = "gemini-pro"
)

// SessionConfig is the fixed configuration of one session kind.
type SessionConfig struct {
	Kind    Kind
	System  string
	Model   string // empty keeps the provider's configured model
	Purpose string // event log label for streamed turns
	lessons.Sampling
}

// request builds the provider request for a conversation history.
func (c SessionConfig) request(messages []llm.Message) llm.Request {
	return llm.Request{
		System:      c.System,
		Messages:    messages,
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
		TopP:        c.TopP,
		TopK:        c.TopK,
	}
}

// DefaultConfigs returns the lesson and Q&A session configurations for
// cfg. Explicit LessonModel / QAModel overrides win; otherwise the
// built-in models are used for providers that understand them.
func DefaultConfigs(cfg llm.Config) map[Kind]SessionConfig {
	lessonModel, qaModel := cfg.LessonModel, cfg.QAModel
	if cfg.Provider == "gemini" || cfg.Provider == "openrouter" {
		if lessonModel == "" {
			lessonModel = DefaultLessonModel
		}
		if qaModel == "" {
			qaModel = DefaultQAModel
		}
	}

	return map[Kind]SessionConfig{
		KindLesson: {
			Kind:     KindLesson,
			System:   lessons.LessonSystemPrompt,
			Model:    lessonModel,
			Purpose:  llm.PurposeLesson,
			Sampling: lessons.LessonSampling(),
		},
		KindQA: {
			Kind:     KindQA,
			System:   lessons.QASystemPrompt,
			Model:    qaModel,
			Purpose:  llm.PurposeQA,
			Sampling: lessons.QASampling(),
		},
	}
}

// ProviderFactory builds the provider backing a session.
type ProviderFactory func(ctx context.Context, sc SessionConfig) (llm.Provider, error)

// NewProviderFactory returns a factory that builds decorated providers
// from cfg, switching the model per session. A nil events repo disables
// event logging.
func NewProviderFactory(cfg llm.Config, events store.EventRepo) ProviderFactory {
	return func(ctx context.Context, sc SessionConfig) (llm.Provider, error) {
		p, err := llm.NewProvider(ctx, cfg.WithModel(sc.Model), events)
		if err != nil {
			return nil, fmt.Errorf("%s session provider: %w", sc.Kind, err)
		}
		return p, nil
	}
}

// StaticProvider returns a factory that hands out p for every kind.
func StaticProvider(p llm.Provider) ProviderFactory {
	return func(context.Context, SessionConfig) (llm.Provider, error) {
		return p, nil
	}
}
