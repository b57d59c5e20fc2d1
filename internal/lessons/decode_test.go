package lessons

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

const sampleScreen = `{
  "ui_state": {
    "current_module_id": "mod1",
    "current_step": 2,
    "screen_title": "UA vs GA4: The Shift",
    "show_sidebar": true,
    "show_practice_panel": false
  },
  "content_blocks": [
    {"type": "lesson", "title": "Users", "text": "GA4 focuses on Active Users."},
    {"type": "visual", "visualType": "metric_comparison",
     "data": {"metric": "Primary User Metric", "ua": "Total Users", "ga4": "Active Users"}},
    {"type": "check_question", "text": "Which user metric does GA4 prioritize?",
     "choices": ["Total Users", "Active Users", "New Users"]}
  ],
  "next_actions": [
    {"id": "a1", "label": "Active Users", "action_type": "answer_choice", "payload": {"choice": "Active Users"}}
  ],
  "progress": {
    "module_completion": {"mod1": 40},
    "overall_completion": 8,
    "last_user_answer_correct": true
  }
}`

func TestDecode_Full(t *testing.T) {
	s, err := Decode(sampleScreen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.UIState.CurrentModuleID != "mod1" || s.UIState.CurrentStep != 2 {
		t.Errorf("unexpected ui_state: %+v", s.UIState)
	}
	if !s.UIState.ShowSidebar || s.UIState.ShowPracticePanel {
		t.Errorf("unexpected flags: %+v", s.UIState)
	}
	if len(s.ContentBlocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(s.ContentBlocks))
	}
	if got := s.ContentBlocks[1].VisualType; got != VisualMetricComparison {
		t.Errorf("visualType = %q", got)
	}
	if got := s.ContentBlocks[2].Choices; len(got) != 3 || got[1] != "Active Users" {
		t.Errorf("choices = %v", got)
	}
	if len(s.NextActions) != 1 || s.NextActions[0].ActionType != ActionAnswerChoice {
		t.Errorf("unexpected actions: %+v", s.NextActions)
	}
	if s.Progress.ModuleCompletion["mod1"] != 40 || s.Progress.OverallCompletion != 8 {
		t.Errorf("unexpected progress: %+v", s.Progress)
	}
	if s.Progress.LastUserAnswerCorrect == nil || !*s.Progress.LastUserAnswerCorrect {
		t.Errorf("expected last answer correct")
	}
}

func TestDecode_SurroundingProse(t *testing.T) {
	text := "Sure! Here's your next step:\n```json\n" + sampleScreen + "\n```\nGood luck."
	s, err := Decode(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.UIState.ScreenTitle != "UA vs GA4: The Shift" {
		t.Errorf("screen_title = %q", s.UIState.ScreenTitle)
	}
}

func TestDecode_Failures(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"plain prose", "Hello there, welcome to GA4."},
		{"open brace only", "here { it comes"},
		{"close before open", "} and then {"},
		{"malformed", `{"ui_state": {"current_step": 1,}`},
		{"two objects", `{"a": 1} and {"b": 2}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Decode(tt.text)
			if err == nil {
				t.Fatalf("expected error, got screen %+v", s)
			}
			if !errors.Is(err, ErrNoPayload) {
				t.Fatalf("expected ErrNoPayload, got %v", err)
			}
			if s != nil {
				t.Fatal("expected nil screen on failure")
			}
		})
	}
}

func TestDecode_EmptyObject(t *testing.T) {
	s, err := Decode("{}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.UIState.ScreenTitle != "" || s.UIState.CurrentStep != 0 {
		t.Errorf("expected zero ui_state, got %+v", s.UIState)
	}
	if s.ContentBlocks != nil || s.NextActions != nil {
		t.Errorf("expected no blocks or actions")
	}
	if s.Progress.LastUserAnswerCorrect != nil {
		t.Errorf("expected unknown correctness")
	}
}

func TestDecode_LenientTypes(t *testing.T) {
	// Wrong-typed fields must not abort decoding.
	s, err := Decode(`{
		"ui_state": {"current_step": "3", "screen_title": 7},
		"content_blocks": {"type": "lesson"},
		"next_actions": ["not an object", {"id": "x", "label": "Go", "action_type": "telepathy"}],
		"progress": {"overall_completion": "50", "last_user_answer_correct": "yes"}
	}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.UIState.CurrentStep != 3 {
		t.Errorf("current_step = %d, want 3", s.UIState.CurrentStep)
	}
	if s.UIState.ScreenTitle != "7" {
		t.Errorf("screen_title = %q", s.UIState.ScreenTitle)
	}
	if s.ContentBlocks != nil {
		t.Errorf("non-array content_blocks should decode as none")
	}
	if len(s.NextActions) != 1 || s.NextActions[0].ActionType != "telepathy" {
		t.Errorf("unexpected actions: %+v", s.NextActions)
	}
	if s.Progress.OverallCompletion != 50 {
		t.Errorf("overall_completion = %v", s.Progress.OverallCompletion)
	}
	if s.Progress.LastUserAnswerCorrect != nil {
		t.Errorf("non-boolean correctness should read as unknown")
	}
}

func TestDecode_CorrectnessTriState(t *testing.T) {
	tests := []struct {
		raw  string
		want *bool
	}{
		{`{"progress": {"last_user_answer_correct": true}}`, boolPtr(true)},
		{`{"progress": {"last_user_answer_correct": false}}`, boolPtr(false)},
		{`{"progress": {"last_user_answer_correct": null}}`, nil},
		{`{"progress": {}}`, nil},
	}
	for _, tt := range tests {
		s, err := Decode(tt.raw)
		if err != nil {
			t.Fatalf("Decode(%s): %v", tt.raw, err)
		}
		got := s.Progress.LastUserAnswerCorrect
		if (got == nil) != (tt.want == nil) || (got != nil && *got != *tt.want) {
			t.Errorf("Decode(%s) correctness = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestDecode_UnknownVisualTypeKept(t *testing.T) {
	s, err := Decode(`{"content_blocks": [{"type": "visual", "visualType": "sankey", "data": {"x": 1}}]}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ContentBlocks[0].VisualType != "sankey" {
		t.Errorf("visualType = %q", s.ContentBlocks[0].VisualType)
	}
	if string(s.ContentBlocks[0].Data) != `{"x": 1}` {
		t.Errorf("data = %s", s.ContentBlocks[0].Data)
	}
}

func TestDecode_SnakeCaseVisualType(t *testing.T) {
	s, err := Decode(`{"content_blocks": [{"type": "visual", "visual_type": "funnel_chart"}]}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ContentBlocks[0].VisualType != VisualFunnel {
		t.Errorf("visualType = %q", s.ContentBlocks[0].VisualType)
	}
}

func TestEncodeDecode_WithProse(t *testing.T) {
	want := &Screen{
		UIState: UIState{CurrentModuleID: "mod3", CurrentStep: 1, ScreenTitle: "Interface Overview", ShowSidebar: true},
		ContentBlocks: []ContentBlock{
			{Type: BlockLesson, Title: "Reports", Text: "Standard reports live under Reports."},
			{Type: BlockVisual, VisualType: VisualReport, Data: json.RawMessage(`{"title":"Snapshot"}`)},
		},
		NextActions: []NextAction{
			{ID: "n", Label: "Next", ActionType: ActionNextStep},
		},
		Progress: Progress{
			ModuleCompletion:      map[string]float64{"mod3": 20},
			OverallCompletion:     44,
			LastUserAnswerCorrect: boolPtr(false),
		},
	}

	b, err := Encode(want)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	text := "Here you go!\n" + string(b) + "\nThat's all."

	got, err := Decode(text)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestExtract(t *testing.T) {
	raw, ok := Extract(`noise {"a": {"b": 1}} tail`)
	if !ok || raw != `{"a": {"b": 1}}` {
		t.Fatalf("Extract = %q, %v", raw, ok)
	}
	if _, ok := Extract("no payload"); ok {
		t.Fatal("expected no payload")
	}
}

func TestDecode_NeverPanics(t *testing.T) {
	inputs := []string{
		"{", "}", "{}}", "{{}", `{"content_blocks": [null, 1, "x"]}`,
		`{"progress": []}`, strings.Repeat("{", 50) + strings.Repeat("}", 50),
	}
	for _, in := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("Decode(%q) panicked: %v", in, r)
				}
			}()
			_, _ = Decode(in)
		}()
	}
}

func boolPtr(v bool) *bool { return &v }
