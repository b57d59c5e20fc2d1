package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ga4tutor/internal/router"
	"github.com/abhisek/ga4tutor/internal/screen"
	"github.com/abhisek/ga4tutor/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 400 * time.Millisecond
	phase2End    = 1200 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

// chart bars grow one step per tick until they reach their height.
var chartHeights = []int{2, 4, 3, 6, 5, 7}

const chartRows = 7

type tickMsg time.Time

// WelcomeScreen shows a short splash, then replaces itself with the
// screen produced by next. Any key skips ahead.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by next.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		next: next,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.elapsed = min(w.elapsed+tickInterval, totalDur)
		w.tickCount++
		if w.elapsed >= totalDur {
			return w, w.transition()
		}
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

// renderChart draws the growing bar chart logo.
func (w *WelcomeScreen) renderChart() string {
	bar := lipgloss.NewStyle().Foreground(theme.Primary)
	dim := lipgloss.NewStyle().Foreground(theme.Border)

	var lines []string
	for row := chartRows; row >= 1; row-- {
		var b strings.Builder
		for _, h := range chartHeights {
			if min(h, w.tickCount) >= row {
				b.WriteString(bar.Render("██ "))
			} else {
				b.WriteString("   ")
			}
		}
		lines = append(lines, b.String())
	}
	lines = append(lines, dim.Render(strings.Repeat("─", len(chartHeights)*3)))
	return strings.Join(lines, "\n")
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	// Phase 1+: chart
	if w.elapsed >= phase1End {
		sections = append(sections, w.renderChart())
	}

	// Phase 2+: banner + tagline
	if w.elapsed >= phase2End {
		sections = append(sections, "", RenderBanner(width), "")

		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Learn Google Analytics 4, one screen at a time.")
		sections = append(sections, tagline, "")

		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to start")
		sections = append(sections, hint)
	}

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
