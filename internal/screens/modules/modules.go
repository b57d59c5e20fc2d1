package modules

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ga4tutor/internal/lessons"
	"github.com/abhisek/ga4tutor/internal/router"
	"github.com/abhisek/ga4tutor/internal/screen"
	"github.com/abhisek/ga4tutor/internal/ui/components"
	"github.com/abhisek/ga4tutor/internal/ui/layout"
	"github.com/abhisek/ga4tutor/internal/ui/theme"
)

// SelectedMsg is delivered to the screen below the picker after it closes.
type SelectedMsg struct {
	ModuleID string
}

// ModulesScreen lists the course modules.
type ModulesScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*ModulesScreen)(nil)
var _ screen.KeyHintProvider = (*ModulesScreen)(nil)

// New creates a picker over every module. current, when set, is marked.
func New(current string) *ModulesScreen {
	items := make([]components.MenuItem, 0, len(lessons.Modules))
	for _, m := range lessons.Modules {
		label, shortcut := m.Title, "i"
		if m.ID != lessons.InterviewPrepID {
			label = fmt.Sprintf("Module %s: %s", m.ID, m.Title)
			shortcut = m.ID
		}
		items = append(items, components.MenuItem{
			Label:       label,
			Description: m.Description,
			Shortcut:    shortcut,
			Current:     m.ID == current,
			Action:      selectModule(m.ID),
		})
	}
	menu := components.NewMenu(items)
	return &ModulesScreen{menu: menu}
}

func selectModule(id string) func() tea.Cmd {
	return func() tea.Cmd {
		return tea.Sequence(
			func() tea.Msg { return router.PopScreenMsg{} },
			func() tea.Msg { return SelectedMsg{ModuleID: id} },
		)
	}
}

func (m *ModulesScreen) Init() tea.Cmd {
	return nil
}

func (m *ModulesScreen) Title() string {
	return "Course Modules"
}

func (m *ModulesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "1-5 / i", Description: "Jump"},
		{Key: "Enter", Description: "Start module"},
		{Key: "Esc", Description: "Back"},
	}
}

func (m *ModulesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m *ModulesScreen) View(width, height int) string {
	heading := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("Pick a module")
	sub := theme.Subtitle.Render("Each module starts a fresh lesson from its first step.")

	body := lipgloss.JoinVertical(lipgloss.Left, heading, sub, "", m.menu.View())
	return lipgloss.NewStyle().
		Width(width).
		Padding(1, 2).
		Render(body)
}
