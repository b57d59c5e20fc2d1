package llm

import (
	"context"
	"errors"
	"testing"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Text: `{"a":1}`, Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Fragments: []string{"he", "llo"}},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp1.Text != `{"a":1}` {
		t.Fatalf("expected {\"a\":1}, got %s", resp1.Text)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}
	if resp1.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp1.StopReason)
	}

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp2.Text != "hello" {
		t.Fatalf("expected fragments joined into 'hello', got %q", resp2.Text)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error from empty queue")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "ok"})

	req := Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	}
	_, _ = mock.Generate(context.Background(), req)

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	if mock.Calls[0].System != "sys" {
		t.Fatalf("expected system 'sys', got %q", mock.Calls[0].System)
	}
	last, ok := mock.LastCall()
	if !ok || last.Messages[0].Content != "hello" {
		t.Fatalf("unexpected last call: %+v", last)
	}
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: 0}},
	)

	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T", err)
	}
}

func TestMockProvider_StreamYieldsFragmentsInOrder(t *testing.T) {
	mock := NewMockProvider(MockResponse{Fragments: []string{"{\"a\":", "1", "}"}})

	var got []string
	for fragment, err := range mock.Stream(context.Background(), Request{}) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, fragment)
	}
	if len(got) != 3 || got[0] != "{\"a\":" || got[2] != "}" {
		t.Fatalf("unexpected fragments: %q", got)
	}
}

func TestMockProvider_StreamIsLazy(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "x"})

	seq := mock.Stream(context.Background(), Request{})
	if mock.CallCount() != 0 {
		t.Fatalf("expected no call before iteration, got %d", mock.CallCount())
	}
	if _, err := Collect(seq); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call after iteration, got %d", mock.CallCount())
	}
}

func TestMockProvider_StreamErrorEndsSequence(t *testing.T) {
	boom := errors.New("connection reset")
	mock := NewMockProvider(MockResponse{Fragments: []string{"par", "tial"}, StreamErr: boom})

	text, err := Collect(mock.Stream(context.Background(), Request{}))
	if !errors.Is(err, boom) {
		t.Fatalf("expected stream error, got %v", err)
	}
	if text != "partial" {
		t.Fatalf("expected text before the failure, got %q", text)
	}
}

func TestMockProvider_StreamEarlyBreak(t *testing.T) {
	mock := NewMockProvider(MockResponse{Fragments: []string{"a", "b", "c"}})

	count := 0
	for range mock.Stream(context.Background(), Request{}) {
		count++
		break
	}
	if count != 1 {
		t.Fatalf("expected to stop after 1 fragment, got %d", count)
	}
}

func TestMockProvider_ModelID(t *testing.T) {
	mock := NewMockProvider()
	if mock.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", mock.ModelID())
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, PurposeLesson)
	if p := PurposeFrom(ctx); p != "lesson" {
		t.Fatalf("expected 'lesson', got %q", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "gemini without key",
			cfg:     Config{Provider: "gemini"},
			wantErr: true,
		},
		{
			name:    "gemini with key",
			cfg:     Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "g-test"}},
			wantErr: false,
		},
		{
			name:    "anthropic without key",
			cfg:     Config{Provider: "anthropic"},
			wantErr: true,
		},
		{
			name:    "openai with key",
			cfg:     Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "openrouter without key",
			cfg:     Config{Provider: "openrouter"},
			wantErr: true,
		},
		{
			name:    "mock needs no key",
			cfg:     Config{Provider: "mock"},
			wantErr: false,
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "unknown"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("GA4TUTOR_LLM_PROVIDER", "anthropic")
	t.Setenv("GA4TUTOR_ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("GA4TUTOR_LESSON_MODEL", "claude-sonnet")

	cfg := ConfigFromEnv()
	if cfg.Provider != "anthropic" {
		t.Fatalf("expected anthropic, got %q", cfg.Provider)
	}
	if cfg.Anthropic.APIKey != "sk-ant" {
		t.Fatalf("expected key from env, got %q", cfg.Anthropic.APIKey)
	}
	if cfg.LessonModel != "claude-sonnet" {
		t.Fatalf("expected lesson model override, got %q", cfg.LessonModel)
	}
	if cfg.Gemini.Model != "gemini-flash" {
		t.Fatalf("expected default gemini model, got %q", cfg.Gemini.Model)
	}
}

func TestDiscoverConfig_LegacyAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "legacy")
	t.Setenv("OPENAI_API_KEY", "sk-openai")

	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("expected a config to be discovered")
	}
	if cfg.Provider != "gemini" || cfg.Gemini.APIKey != "legacy" {
		t.Fatalf("expected gemini with legacy key, got %q / %q", cfg.Provider, cfg.Gemini.APIKey)
	}
}

func TestResolveConfig_FallsBackToDiscovery(t *testing.T) {
	t.Setenv("GA4TUTOR_LLM_PROVIDER", "")
	t.Setenv("GA4TUTOR_GEMINI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("GA4TUTOR_QA_MODEL", "claude-sonnet")

	cfg, err := ResolveConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != "anthropic" {
		t.Fatalf("expected anthropic, got %q", cfg.Provider)
	}
	if cfg.QAModel != "claude-sonnet" {
		t.Fatalf("expected QA model override to survive discovery, got %q", cfg.QAModel)
	}
}

func TestConfig_WithModel(t *testing.T) {
	cfg := DefaultConfig()
	pro := cfg.WithModel("gemini-pro")
	if pro.Gemini.Model != "gemini-pro" {
		t.Fatalf("expected gemini-pro, got %q", pro.Gemini.Model)
	}
	if cfg.Gemini.Model != "gemini-flash" {
		t.Fatalf("original config mutated: %q", cfg.Gemini.Model)
	}
	if same := cfg.WithModel(""); same.Gemini.Model != "gemini-flash" {
		t.Fatalf("empty model should leave config unchanged, got %q", same.Gemini.Model)
	}
}
