package components

import (
	"github.com/abhisek/ga4tutor/internal/present"
	"github.com/abhisek/ga4tutor/internal/ui/theme"
)

// Button renders a card action. Focused buttons use the filled style.
type Button struct {
	Label   string
	Style   present.ActionStyle
	Focused bool
}

// NewButton creates a button for a card action.
func NewButton(a present.Action, focused bool) Button {
	return Button{
		Label:   a.Label,
		Style:   a.Style,
		Focused: focused,
	}
}

// View renders the button.
func (b Button) View() string {
	if b.Focused {
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	switch b.Style {
	case present.StyleSwitch:
		return theme.ButtonSwitch.Render(b.Label)
	case present.StylePrimary:
		return theme.ButtonPrimary.Render(b.Label)
	default:
		return theme.ButtonChoice.Render(b.Label)
	}
}
