package tutor

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/ga4tutor/internal/lessons"
	"github.com/abhisek/ga4tutor/internal/present"
	"github.com/abhisek/ga4tutor/internal/ui/theme"
)

func renderVisual(v *present.Visual, width int) string {
	if v == nil {
		return ""
	}
	switch v.Kind {
	case lessons.VisualEventVsSession:
		return renderEventVsSession(width)
	case lessons.VisualMetricComparison:
		return renderMetric(v.Metric, width)
	case lessons.VisualComparisonTable:
		return renderTable(v.Table.Headers, v.Table.Rows, width)
	case lessons.VisualReport:
		return renderReport(v.Report, width)
	case lessons.VisualStatusList:
		return renderStatus(v.Status)
	case lessons.VisualFunnel:
		return renderFunnel(v.Funnel, width)
	case lessons.VisualRoleDetails:
		return renderRole(v.Role, width)
	}
	return ""
}

func renderEventVsSession(width int) string {
	col := max((width-3)/2, 10)
	ua := theme.Panel.Width(col).Render(
		theme.Label.Render("Universal Analytics") + "\n" +
			"Session\n ├ Pageview\n ├ Event\n └ Transaction")
	ga4 := theme.Panel.Width(col).BorderForeground(theme.Primary).Render(
		theme.Title.Render("GA4") + "\n" +
			"page_view {params}\nscroll {params}\npurchase {params}")
	return lipgloss.JoinHorizontal(lipgloss.Top, ua, " ", ga4)
}

func renderMetric(m *present.MetricComparison, width int) string {
	out := renderTable([]string{"", "Universal Analytics", "GA4"}, [][]string{{m.Metric, m.UA, m.GA4}}, width)
	if m.Insight != "" {
		out += "\n" + theme.Hint.Width(width).Render(m.Insight)
	}
	return out
}

func renderTable(headers []string, rows [][]string, width int) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(headers...).
		Rows(rows...).
		Width(width).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return style.Foreground(theme.Primary).Bold(true)
			case col == 0:
				return style.Foreground(theme.Text).Bold(true)
			default:
				return style.Foreground(theme.Text)
			}
		})
	return t.Render()
}

func renderReport(r *present.Report, width int) string {
	rows := []string{theme.Label.Render(r.Title)}
	for _, m := range r.Metrics {
		line := fmt.Sprintf("%s %-20s %10s", reportIcon(m.Icon), m.Name, m.Value)
		switch m.Trend {
		case 1:
			line += "  " + theme.Correct.Render("▲ "+m.Change)
		case -1:
			line += "  " + theme.Incorrect.Render("▼ "+m.Change)
		}
		rows = append(rows, line)
	}
	return theme.Panel.Width(width).Render(strings.Join(rows, "\n"))
}

func reportIcon(icon string) string {
	switch icon {
	case "users":
		return "👥"
	case "activity":
		return "⚡"
	default:
		return "📈"
	}
}

func renderStatus(l *present.StatusList) string {
	var rows []string
	if l.Title != "" {
		rows = append(rows, theme.Label.Render(l.Title))
	}
	for _, item := range l.Items {
		badge := theme.Subtitle.Render(item.Badge)
		switch item.Badge {
		case present.BadgeChecked:
			badge = theme.Correct.Render(item.Badge)
		case present.BadgeKeyEvent:
			badge = lipgloss.NewStyle().Foreground(theme.Warning).Bold(true).Render(item.Badge)
		}
		rows = append(rows, fmt.Sprintf("  %s  %s", item.Label, badge))
	}
	return strings.Join(rows, "\n")
}

func renderFunnel(f *present.Funnel, width int) string {
	var rows []string
	if f.Title != "" {
		rows = append(rows, theme.Label.Render(f.Title))
	}
	barMax := max(width-24, 10)
	for _, step := range f.Steps {
		style := lipgloss.NewStyle().Background(theme.Secondary)
		if step.Highlight {
			style = lipgloss.NewStyle().Background(theme.Primary)
		}
		n := max(int(float64(barMax)*step.Percent/100), 1)
		bar := style.Render(strings.Repeat(" ", n))
		rows = append(rows, fmt.Sprintf("%-14s %s %s", step.Label, bar, step.Value))
	}
	return strings.Join(rows, "\n")
}

func renderRole(r *present.Role, width int) string {
	rows := []string{theme.Title.Render(r.Role)}
	section := func(label string, items []string) {
		if len(items) == 0 {
			return
		}
		rows = append(rows, theme.Label.Render(label))
		for _, item := range items {
			rows = append(rows, "  • "+item)
		}
	}
	section("Responsibilities", r.Responsibilities)
	section("Key metrics", r.Metrics)
	section("Tools", r.Tools)
	if r.Scenario != "" {
		rows = append(rows, theme.Label.Render("Scenario"), theme.Hint.Width(width-4).Render(r.Scenario))
	}
	return theme.Panel.Width(width).Render(strings.Join(rows, "\n"))
}
