package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ga4tutor/internal/present"
	"github.com/abhisek/ga4tutor/internal/ui/theme"
)

// ActionSelectedMsg is emitted when the user activates a card action.
type ActionSelectedMsg struct {
	Action present.Action
}

// ActionBar lets the user move between the actions of the latest card
// and activate one with enter.
type ActionBar struct {
	Actions  []present.Action
	Selected int
	Focused  bool
}

// NewActionBar creates an action bar over the given actions.
func NewActionBar(actions []present.Action) ActionBar {
	return ActionBar{Actions: actions}
}

// SetActions replaces the actions, keeping the selection in range.
func (a *ActionBar) SetActions(actions []present.Action) {
	a.Actions = actions
	if a.Selected >= len(actions) {
		a.Selected = 0
	}
}

// Empty reports whether there is nothing to select.
func (a ActionBar) Empty() bool {
	return len(a.Actions) == 0
}

// Update handles keyboard navigation and activation.
func (a ActionBar) Update(msg tea.Msg) (ActionBar, tea.Cmd) {
	if !a.Focused || a.Empty() {
		return a, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	switch kmsg.String() {
	case "left", "h", "up", "k":
		if a.Selected > 0 {
			a.Selected--
		}
	case "right", "l", "down", "j":
		if a.Selected < len(a.Actions)-1 {
			a.Selected++
		}
	case "enter":
		action := a.Actions[a.Selected]
		return a, func() tea.Msg { return ActionSelectedMsg{Action: action} }
	}

	return a, nil
}

// View renders the actions, wrapping to new rows at width.
func (a ActionBar) View(width int) string {
	if a.Empty() {
		return ""
	}

	var rows []string
	var row []string
	rowWidth := 0
	for i, action := range a.Actions {
		b := NewButton(action, a.Focused && i == a.Selected).View()
		w := lipgloss.Width(b) + 1
		if rowWidth > 0 && rowWidth+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, rowWidth = nil, 0
		}
		row = append(row, b, " ")
		rowWidth += w
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	if !a.Focused {
		hint := lipgloss.NewStyle().Foreground(theme.TextDim).Render("tab to choose an action")
		rows = append(rows, hint)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
