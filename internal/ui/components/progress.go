package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/ga4tutor/internal/ui/theme"
)

// ProgressBar shows how far through the course the learner is. Percent is
// clamped to 0-100 when drawn.
type ProgressBar struct {
	Label       string
	Percent     int
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent int, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the bar as "Label  ━━━━━━──────  40%".
func (p ProgressBar) View() string {
	pct := min(max(p.Percent, 0), 100)

	var prefix, suffix string
	if p.Label != "" {
		prefix = lipgloss.NewStyle().Foreground(theme.TextDim).Render(p.Label) + "  "
	}
	if p.ShowPercent {
		suffix = lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  %3d%%", pct))
	}

	barWidth := max(p.Width-lipgloss.Width(prefix)-lipgloss.Width(suffix), 4)
	filled := barWidth * pct / 100
	// A started course never looks empty.
	if pct > 0 && filled == 0 {
		filled = 1
	}

	return prefix +
		theme.ProgressFilled.Render(strings.Repeat("━", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat("─", barWidth-filled)) +
		suffix
}
