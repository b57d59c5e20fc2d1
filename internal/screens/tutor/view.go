package tutor

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"

	"github.com/abhisek/ga4tutor/internal/conversation"
	"github.com/abhisek/ga4tutor/internal/lessons"
	"github.com/abhisek/ga4tutor/internal/present"
	"github.com/abhisek/ga4tutor/internal/ui/components"
	"github.com/abhisek/ga4tutor/internal/ui/layout"
	"github.com/abhisek/ga4tutor/internal/ui/theme"
)

func (s *TutorScreen) View(width, height int) string {
	s.resize(width, height)

	parts := []string{s.viewport.View()}
	if !s.actions.Empty() {
		parts = append(parts, lipgloss.NewStyle().Padding(0, 1).Render(s.actions.View(width-2)))
	}
	parts = append(parts, s.renderInput(width))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *TutorScreen) renderInput(width int) string {
	border := theme.Border
	if s.focus == focusInput && !s.input.Disabled {
		border = theme.Primary
	}
	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Render(s.input.View())
}

// resize fits the viewport into what the action bar and input leave.
func (s *TutorScreen) resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	s.input.SetWidth(width - 4)
	s.refresh()
}

func (s *TutorScreen) viewportHeight() int {
	used := 3 // input box
	if !s.actions.Empty() {
		used += lipgloss.Height(s.actions.View(s.width - 2))
	}
	return max(s.height-used, 1)
}

// refresh re-renders the active conversation into the viewport and
// rebinds the action bar to the latest card.
func (s *TutorScreen) refresh() {
	mode := s.tutor.Mode()
	if !mode.HasLog() || s.width == 0 {
		return
	}
	store := s.tutor.Store()
	busy := store.Busy(mode)
	thread := present.RenderThread(store.Log(mode), busy)

	s.input.Disabled = busy
	s.actions.SetActions(latestActions(thread.Bubbles, busy))
	if s.actions.Empty() && s.focus == focusActions {
		s.setFocus(focusInput)
	}

	s.viewport.SetWidth(s.width)
	s.viewport.SetHeight(s.viewportHeight())
	s.viewport.SetContent(s.renderThread(thread, mode, busy))
	if s.follow {
		s.viewport.GotoBottom()
	}
}

// latestActions returns the actions of the last bubble when it is an
// idle card. Older cards are history and cannot be answered again.
func latestActions(bubbles []present.Bubble, busy bool) []present.Action {
	if busy || len(bubbles) == 0 {
		return nil
	}
	last := bubbles[len(bubbles)-1]
	if last.Kind != present.BubbleCard {
		return nil
	}
	return last.Card.Actions
}

func (s *TutorScreen) renderThread(thread present.Thread, mode conversation.Mode, busy bool) string {
	width := s.width - 2
	if thread.Placeholder {
		return theme.Thinking.Render("\n  " + present.PlaceholderText)
	}

	var out []string
	for _, b := range thread.Bubbles {
		out = append(out, s.renderBubble(b, width))
	}

	switch {
	case busy && len(thread.Bubbles) == 0:
		out = append(out, theme.Thinking.Render("  Connecting to tutor"+s.dots()))
	case thread.Typing:
		if p := s.partial[mode]; p != "" && mode == conversation.ModeQA {
			out = append(out, theme.ModelBubble.Width(bubbleWidth(width)).Render(p))
		} else {
			out = append(out, theme.Thinking.Render("  Tutor is typing"+s.dots()))
		}
	}
	return strings.Join(out, "\n\n")
}

func (s *TutorScreen) dots() string {
	return strings.Repeat(".", s.frame%3+1)
}

// bubbleWidth leaves a gutter for the other speaker except on narrow
// terminals.
func bubbleWidth(width int) int {
	if layout.IsCompactWidth(width) {
		return width
	}
	return max(width*4/5, 20)
}

func (s *TutorScreen) renderBubble(b present.Bubble, width int) string {
	switch b.Kind {
	case present.BubbleUser:
		w := min(lipgloss.Width(b.Text)+2, bubbleWidth(width))
		bubble := theme.UserBubble.Width(w).Render(b.Text)
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble)
	case present.BubbleThinking:
		return theme.Thinking.Render("  ...")
	case present.BubbleCard:
		return s.renderCard(b.Card, width)
	default:
		w := bubbleWidth(width)
		return theme.ModelBubble.Width(w).Render(s.md.Render(b.Text, w-4))
	}
}

func (s *TutorScreen) renderCard(c *present.Card, width int) string {
	inner := width - 4
	var rows []string

	title := theme.Title.Render(c.Title)
	if c.Badge != present.BadgeNone {
		style := theme.Correct
		if c.Badge == present.BadgeTryAgain {
			style = theme.Incorrect
		}
		title += "  " + style.Render(string(c.Badge))
	}
	rows = append(rows, title)

	var meta []string
	if c.ModuleID != "" {
		if m, ok := lessons.FindModule(c.ModuleID); ok {
			meta = append(meta, m.Title)
		} else {
			meta = append(meta, "Module "+c.ModuleID)
		}
	}
	if c.Step > 0 {
		meta = append(meta, fmt.Sprintf("Step %d", c.Step))
	}
	if len(meta) > 0 {
		rows = append(rows, theme.Subtitle.Render(strings.Join(meta, " · ")))
	}
	rows = append(rows, components.NewProgressBar("", int(c.Progress), true, inner).View(), "")

	for _, b := range c.Blocks {
		rows = append(rows, s.renderBlock(b, inner), "")
	}
	if len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}

	return theme.Card.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (s *TutorScreen) renderBlock(b present.Block, width int) string {
	switch b.Kind {
	case lessons.BlockVisual:
		return renderVisual(b.Visual, width)

	case lessons.BlockExample:
		label := theme.Label.Render("Example")
		return theme.Panel.Width(width).Render(label + "\n" + s.md.Render(b.Text, width-4))

	case lessons.BlockPractice, lessons.BlockCheckQuestion:
		rows := []string{theme.Selected.Render("? " + b.Title)}
		if b.Text != "" {
			rows = append(rows, s.md.Render(b.Text, width))
		}
		for i, choice := range b.Choices {
			rows = append(rows, theme.Body.Render(fmt.Sprintf("  %c. %s", 'A'+i, choice)))
		}
		return strings.Join(rows, "\n")

	default:
		var rows []string
		if b.Title != "" {
			rows = append(rows, theme.Label.Render(b.Title))
		}
		rows = append(rows, s.md.Render(b.Text, width))
		return strings.Join(rows, "\n")
	}
}

// markdown renders message text with glamour, caching per width.
type markdown struct {
	width    int
	renderer *glamour.TermRenderer
	cache    map[string]string
}

func newMarkdown() *markdown {
	return &markdown{cache: make(map[string]string)}
}

func (m *markdown) Render(text string, width int) string {
	width = max(width, 10)
	if m.renderer == nil || width != m.width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStylePath("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return lipgloss.NewStyle().Width(width).Render(text)
		}
		m.renderer = r
		m.width = width
		clear(m.cache)
	}
	if out, ok := m.cache[text]; ok {
		return out
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		out = text
	}
	out = strings.Trim(out, "\n")
	m.cache[text] = out
	return out
}
