package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/abhisek/ga4tutor/internal/chat"
	"github.com/abhisek/ga4tutor/internal/conversation"
)

func newFlagCmd() *cobra.Command {
	c := &cobra.Command{Use: "test"}
	c.Flags().String("addr", "", "")
	c.Flags().String("db", "", "")
	return c
}

func TestResolveAddr(t *testing.T) {
	t.Setenv("GA4TUTOR_ADDR", "")
	c := newFlagCmd()
	if got := resolveAddr(c); got != defaultAddr {
		t.Errorf("expected default %q, got %q", defaultAddr, got)
	}

	t.Setenv("GA4TUTOR_ADDR", ":9000")
	if got := resolveAddr(c); got != ":9000" {
		t.Errorf("expected env addr, got %q", got)
	}

	c.Flags().Set("addr", "127.0.0.1:7000")
	if got := resolveAddr(c); got != "127.0.0.1:7000" {
		t.Errorf("expected flag addr, got %q", got)
	}
}

func TestResolveDBPath_Flag(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, "nested", "tutor.db")

	c := newFlagCmd()
	c.Flags().Set("db", want)
	got, err := resolveDBPath(c)
	if err != nil {
		t.Fatalf("resolveDBPath: %v", err)
	}
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if _, err := os.Stat(filepath.Dir(want)); err != nil {
		t.Errorf("expected parent directory created: %v", err)
	}
}

func TestReadPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reply.txt")
	if err := os.WriteFile(path, []byte(`{"ui_state": {}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := readPayload(path)
	if err != nil {
		t.Fatalf("readPayload: %v", err)
	}
	if got != `{"ui_state": {}}` {
		t.Errorf("unexpected payload %q", got)
	}

	if _, err := readPayload(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestDescribeScreen(t *testing.T) {
	got := describeScreen(`Here you go: {"ui_state": {"current_module_id": "mod2", "current_step": 3}, "next_actions": [{"label": "Next"}]}`)
	want := `"Learning Module" module=mod2 step=3 blocks=0 actions=1`
	if got != want {
		t.Errorf("describeScreen = %q, want %q", got, want)
	}
	if got := describeScreen("plain prose"); got != "(no JSON screen)" {
		t.Errorf("describeScreen(prose) = %q", got)
	}
}

func TestFormatCost(t *testing.T) {
	tests := []struct {
		usd  float64
		want string
	}{
		{0.0012, "$0.0012"},
		{0.5, "$0.50"},
		{12.5, "$12.50"},
	}
	for _, tt := range tests {
		if got := formatCost(tt.usd); got != tt.want {
			t.Errorf("formatCost(%v) = %q, want %q", tt.usd, got, tt.want)
		}
	}
}

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"GA4TUTOR_LLM_PROVIDER",
		"GA4TUTOR_GEMINI_API_KEY", "GA4TUTOR_OPENAI_API_KEY",
		"GA4TUTOR_ANTHROPIC_API_KEY", "GA4TUTOR_OPENROUTER_API_KEY",
		"GEMINI_API_KEY", "API_KEY", "OPENAI_API_KEY",
		"ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(name, "")
	}
}

func TestBuildTutor_MissingCredentials(t *testing.T) {
	clearProviderEnv(t)

	c := newFlagCmd()
	c.Flags().Set("db", filepath.Join(t.TempDir(), "tutor.db"))
	d, err := buildTutor(c, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("buildTutor should not fail without credentials: %v", err)
	}
	defer d.Close()

	ctx := context.Background()
	err = d.tutor.Bootstrap(ctx)
	var initErr *chat.SessionInitError
	if !errors.As(err, &initErr) {
		t.Fatalf("expected SessionInitError, got %v", err)
	}

	log := d.tutor.Store().Log(conversation.ModeLesson)
	if len(log) != 1 || log[0].Text != conversation.ConnectionFailedText {
		t.Fatalf("expected one connection warning, got %+v", log)
	}

	if err := d.tutor.SwitchMode(ctx, conversation.ModeSimulation); err != nil {
		t.Fatalf("simulator should stay reachable: %v", err)
	}
	if err := d.tutor.SendTo(ctx, conversation.ModeLesson, "Event", nil); !errors.As(err, &initErr) {
		t.Fatalf("expected SessionInitError on a later send, got %v", err)
	}
	log = d.tutor.Store().Log(conversation.ModeLesson)
	if got := log[len(log)-1].Text; got != conversation.LessonApologyText {
		t.Errorf("expected apology after failed send, got %q", got)
	}
}
