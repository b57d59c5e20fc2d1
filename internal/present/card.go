package present

import "github.com/abhisek/ga4tutor/internal/lessons"

// Card defaults.
const (
	DefaultScreenTitle   = "Learning Module"
	DefaultProgress      = 5
	DefaultPracticeTitle = "Check your knowledge"
)

// Badge reflects the correctness of the learner's last answer.
type Badge string

const (
	BadgeNone     Badge = ""
	BadgeCorrect  Badge = "Correct!"
	BadgeTryAgain Badge = "Try Again"
)

// ActionStyle selects how an action button is drawn.
type ActionStyle string

const (
	StyleChoice  ActionStyle = "choice"
	StyleSwitch  ActionStyle = "switch"
	StylePrimary ActionStyle = "primary"
)

// Card is a rendered tutoring screen with every default applied.
type Card struct {
	Title    string  `json:"title"`
	ModuleID string  `json:"module_id,omitempty"`
	Step     int     `json:"step,omitempty"`
	Badge    Badge   `json:"badge,omitempty"`
	Progress float64 `json:"progress"`

	Blocks  []Block  `json:"blocks"`
	Actions []Action `json:"actions"`
}

// Block is a rendered content block.
type Block struct {
	Kind    string   `json:"kind"`
	Title   string   `json:"title,omitempty"`
	Text    string   `json:"text,omitempty"`
	Choices []string `json:"choices,omitempty"`
	Visual  *Visual  `json:"visual,omitempty"`
}

// Action is an activatable button.
type Action struct {
	lessons.NextAction
	Style ActionStyle `json:"style"`
}

// NewCard applies render-time defaults to a decoded screen. Blocks of
// unknown type and visuals of unknown kind are dropped.
func NewCard(s *lessons.Screen) *Card {
	c := &Card{
		Title:    s.UIState.ScreenTitle,
		ModuleID: s.UIState.CurrentModuleID,
		Step:     s.UIState.CurrentStep,
		Progress: progressPercent(s.Progress.OverallCompletion),
		Blocks:   []Block{},
		Actions:  []Action{},
	}
	if c.Title == "" {
		c.Title = DefaultScreenTitle
	}
	if correct := s.Progress.LastUserAnswerCorrect; correct != nil {
		c.Badge = BadgeTryAgain
		if *correct {
			c.Badge = BadgeCorrect
		}
	}

	for _, cb := range s.ContentBlocks {
		if b, ok := newBlock(cb); ok {
			c.Blocks = append(c.Blocks, b)
		}
	}
	for _, a := range s.NextActions {
		c.Actions = append(c.Actions, Action{NextAction: a, Style: styleOf(a)})
	}
	return c
}

// progressPercent defaults a zero completion and clamps to [0, 100].
func progressPercent(v float64) float64 {
	if v == 0 {
		v = DefaultProgress
	}
	return min(max(v, 0), 100)
}

func newBlock(cb lessons.ContentBlock) (Block, bool) {
	b := Block{Kind: cb.Type, Title: cb.Title, Text: cb.Text}

	switch cb.Type {
	case lessons.BlockLesson:
	case lessons.BlockExample:
		b.Title = ""
	case lessons.BlockPractice, lessons.BlockCheckQuestion:
		if b.Title == "" {
			b.Title = DefaultPracticeTitle
		}
		b.Choices = cb.Choices
	case lessons.BlockVisual:
		v := newVisual(cb)
		if v == nil {
			return Block{}, false
		}
		b.Title, b.Text = "", ""
		b.Visual = v
	default:
		return Block{}, false
	}
	return b, true
}

func styleOf(a lessons.NextAction) ActionStyle {
	switch a.ActionType {
	case lessons.ActionAnswerChoice:
		return StyleChoice
	case lessons.ActionSwitchMode:
		return StyleSwitch
	default:
		return StylePrimary
	}
}

// IsModeSwitch reports whether activating a opens the simulator.
func IsModeSwitch(a lessons.NextAction) bool {
	return a.IsModeSwitch()
}

// Outbound returns the message text sent when a is activated.
func Outbound(a lessons.NextAction) string {
	return a.OutboundText()
}
