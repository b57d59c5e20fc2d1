package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ga4tutor/internal/ui/theme"
)

// MenuItem is one row of a Menu. Shortcut, when set, is a key that selects
// and activates the item directly ("3" for Module 3). Current marks the
// item the user is already on, such as the active lesson module.
type MenuItem struct {
	Label       string
	Description string
	Shortcut    string
	Current     bool
	Disabled    bool
	Action      func() tea.Cmd
}

// Menu is a vertical list with wrap-around navigation.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the current item selected, or the first
// enabled one when none is current.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	for i, item := range items {
		if item.Disabled {
			continue
		}
		if item.Current {
			m.Selected = i
			break
		}
		if m.Selected < 0 {
			m.Selected = i
		}
	}
	m.Selected = max(m.Selected, 0)
	return m
}

// Update handles keyboard navigation and activation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "enter":
		return m, m.activate(m.Selected)
	default:
		for i, item := range m.Items {
			if item.Shortcut != "" && item.Shortcut == key && !item.Disabled {
				m.Selected = i
				return m, m.activate(i)
			}
		}
	}
	return m, nil
}

// move steps to the next enabled item in dir, wrapping at either end.
func (m *Menu) move(dir int) {
	n := len(m.Items)
	for step := 1; step < n; step++ {
		i := ((m.Selected+dir*step)%n + n) % n
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

func (m Menu) activate(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	item := m.Items[i]
	if item.Disabled || item.Action == nil {
		return nil
	}
	return item.Action()
}

// View renders the menu.
func (m Menu) View() string {
	var b strings.Builder
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)
	current := lipgloss.NewStyle().Foreground(theme.Success).Render(" ●")

	for i, item := range m.Items {
		label := item.Label
		if item.Shortcut != "" {
			label = "[" + item.Shortcut + "] " + label
		}

		switch {
		case item.Disabled:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render("    " + label))
		case i == m.Selected:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  ▸ " + label))
		default:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("    " + label))
		}
		if item.Current {
			b.WriteString(current)
		}
		b.WriteString("\n")

		if item.Description != "" {
			b.WriteString(desc.Render("      "+item.Description) + "\n")
		}
	}
	return b.String()
}
