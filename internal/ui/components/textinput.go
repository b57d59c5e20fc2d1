package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ga4tutor/internal/ui/theme"
)

// TextInput wraps bubbles/textinput as the chat composer. While Disabled
// it swallows keystrokes and shows DisabledHint instead of the cursor.
type TextInput struct {
	Model        textinput.Model
	Disabled     bool
	DisabledHint string
	MaxWidth     int
}

// NewTextInput creates a new styled text input.
func NewTextInput(placeholder string, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.Focus()

	return TextInput{
		Model:        ti,
		DisabledHint: "Tutor is typing...",
		MaxWidth:     maxWidth,
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.Disabled {
		if _, ok := msg.(tea.KeyMsg); ok {
			return t, nil
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t TextInput) View() string {
	if t.Disabled {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("› " + t.DisabledHint)
	}
	return t.Model.View()
}

// Value returns the trimmed input value.
func (t TextInput) Value() string {
	return strings.TrimSpace(t.Model.Value())
}

// Reset clears the input.
func (t *TextInput) Reset() {
	t.Model.Reset()
}

// Focus gives the input keyboard focus.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes keyboard focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// SetWidth resizes the input, capped at MaxWidth when set.
func (t *TextInput) SetWidth(w int) {
	if t.MaxWidth > 0 && w > t.MaxWidth {
		w = t.MaxWidth
	}
	t.Model.SetWidth(max(w-2, 1))
}
