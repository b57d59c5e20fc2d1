package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{MinWidth, MinHeight, false},
		{MinWidth - 1, MinHeight, true},
		{MinWidth, MinHeight - 1, true},
		{120, 40, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestRenderHeader(t *testing.T) {
	out := RenderHeader("Lesson", "qa", 100)
	for _, want := range []string{"GA4 Tutor", "Lesson", "qa"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected header to contain %q", want)
		}
	}
}

func TestRenderFrame_FillsHeight(t *testing.T) {
	header := RenderHeader("Lesson", "", 80)
	footer := RenderFooter([]KeyHint{{Key: "Enter", Description: "Send"}}, 80)

	frame := RenderFrame(header, "body", footer, 80, 30)
	if h := lipgloss.Height(frame); h != 30 {
		t.Errorf("expected frame height 30, got %d", h)
	}
}

func TestRenderFooter_DropsHintsThatDoNotFit(t *testing.T) {
	hints := []KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Ctrl+T", Description: "Switch lesson / Q&A"},
		{Key: "Ctrl+O", Description: "Modules"},
	}

	wide := RenderFooter(hints, 120)
	if !strings.Contains(wide, "Modules") {
		t.Error("expected every hint on a wide terminal")
	}

	narrow := RenderFooter(hints, 40)
	if !strings.Contains(narrow, "Send") || strings.Contains(narrow, "Modules") {
		t.Errorf("expected only leading hints on a narrow terminal, got %q", narrow)
	}
}

func TestRenderHeader_CompactHidesStatus(t *testing.T) {
	if out := RenderHeader("Lesson", "typing...", 80); strings.Contains(out, "typing") {
		t.Error("expected status hidden on compact width")
	}
}
