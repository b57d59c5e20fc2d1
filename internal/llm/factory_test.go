package llm

import (
	"context"
	"strings"
	"testing"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		model   string
		wantErr string
	}{
		{
			name:  "mock is wrapped",
			cfg:   Config{Provider: "mock"},
			model: "mock",
		},
		{
			name:  "openrouter resolves friendly name",
			cfg:   Config{Provider: "openrouter", OpenRouter: OpenRouterConfig{APIKey: "k", Model: "gemini-flash"}},
			model: "google/gemini-2.5-flash",
		},
		{
			name:  "anthropic",
			cfg:   Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "k", Model: "claude-haiku"}},
			model: "claude-haiku-4-5-20251001",
		},
		{
			name:    "missing key",
			cfg:     Config{Provider: "openai"},
			wantErr: "GA4TUTOR_OPENAI_API_KEY",
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "palm"},
			wantErr: "unknown LLM provider",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(context.Background(), tt.cfg, nil)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, ok := p.(*RetryProvider); !ok {
				t.Errorf("expected retry wrapper, got %T", p)
			}
			if p.ModelID() != tt.model {
				t.Errorf("ModelID = %q, want %q", p.ModelID(), tt.model)
			}
		})
	}
}
