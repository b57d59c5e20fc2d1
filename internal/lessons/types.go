package lessons

import "encoding/json"

// Content block types.
const (
	BlockLesson        = "lesson"
	BlockExample       = "example"
	BlockPractice      = "practice"
	BlockCheckQuestion = "check_question"
	BlockVisual        = "visual"
)

// Visual kinds understood by the renderer. Any other visualType is kept
// on the block but renders nothing.
const (
	VisualEventVsSession   = "event_vs_session"
	VisualMetricComparison = "metric_comparison"
	VisualComparisonTable  = "comparison_table"
	VisualReport           = "ga4_report"
	VisualStatusList       = "status_list"
	VisualFunnel           = "funnel_chart"
	VisualRoleDetails      = "role_details"
)

// Next action kinds.
const (
	ActionAnswerChoice   = "answer_choice"
	ActionFreeTextAnswer = "free_text_answer"
	ActionGoToModule     = "go_to_module"
	ActionRetry          = "retry"
	ActionNextStep       = "next_step"
	ActionNextModule     = "next_module"
	ActionSwitchMode     = "switch_mode"
)

// Screen is the tutoring screen decoded from one lesson-mode model turn.
// It is derived fresh from the message text each time it is rendered.
type Screen struct {
	UIState       UIState        `json:"ui_state"`
	ContentBlocks []ContentBlock `json:"content_blocks"`
	NextActions   []NextAction   `json:"next_actions"`
	Progress      Progress       `json:"progress"`
}

// UIState is the screen metadata.
type UIState struct {
	CurrentModuleID   string `json:"current_module_id"`
	CurrentStep       int    `json:"current_step"`
	ScreenTitle       string `json:"screen_title"`
	ShowSidebar       bool   `json:"show_sidebar"`
	ShowPracticePanel bool   `json:"show_practice_panel"`
}

// ContentBlock is one renderable unit of a screen. Which fields are
// meaningful depends on Type; Data is only used by visual blocks and is
// decoded on demand by the typed accessors in visual.go.
type ContentBlock struct {
	Type       string          `json:"type"`
	Title      string          `json:"title,omitempty"`
	Text       string          `json:"text,omitempty"`
	Choices    []string        `json:"choices,omitempty"`
	VisualType string          `json:"visualType,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
}

// NextAction is a user-activatable choice.
type NextAction struct {
	ID         string          `json:"id"`
	Label      string          `json:"label"`
	ActionType string          `json:"action_type"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// Progress reports completion and the correctness of the last answer.
type Progress struct {
	ModuleCompletion  map[string]float64 `json:"module_completion,omitempty"`
	OverallCompletion float64            `json:"overall_completion"`

	// LastUserAnswerCorrect is nil when unknown (null or absent).
	LastUserAnswerCorrect *bool `json:"last_user_answer_correct"`
}
