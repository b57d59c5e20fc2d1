package dashboard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/ga4tutor/internal/screen"
	"github.com/abhisek/ga4tutor/internal/simulator"
	"github.com/abhisek/ga4tutor/internal/ui/components"
	"github.com/abhisek/ga4tutor/internal/ui/layout"
	"github.com/abhisek/ga4tutor/internal/ui/theme"
)

const railWidth = 28

// DashboardScreen is the static analytics simulator.
type DashboardScreen struct {
	dash *simulator.Dashboard
	menu components.Menu
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New opens the simulator on the traffic acquisition report.
func New() *DashboardScreen {
	d := simulator.New()
	return &DashboardScreen{
		dash: d,
		menu: newRail(d),
	}
}

// newRail flattens the left rail and the reports menu into one list. The
// entry for what the canvas shows is marked current.
func newRail(d *simulator.Dashboard) components.Menu {
	var items []components.MenuItem
	for _, n := range simulator.NavItems {
		nav := n.Nav
		if nav == simulator.NavReports {
			for _, r := range simulator.ReportItems {
				report := r.Report
				items = append(items, components.MenuItem{
					Label:   "Reports › " + r.Label,
					Current: d.Nav == simulator.NavReports && d.Report == report,
					Action: func() tea.Cmd {
						d.SelectReport(report)
						return nil
					},
				})
			}
			continue
		}
		items = append(items, components.MenuItem{
			Label:   n.Label,
			Current: d.Nav == nav,
			Action: func() tea.Cmd {
				d.SelectNav(nav)
				return nil
			},
		})
	}
	return components.NewMenu(items)
}

func (s *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (s *DashboardScreen) Title() string {
	return "Simulator"
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
	}
	if s.dash.View() == simulator.ViewHome {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Realtime"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back to tutor"})
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	if kmsg.String() == "r" && s.dash.View() == simulator.ViewHome {
		s.dash.OpenRealtime()
		s.menu = newRail(s.dash)
		return s, nil
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	selected := s.menu.Selected
	s.menu = newRail(s.dash)
	s.menu.Selected = selected
	return s, cmd
}

func (s *DashboardScreen) View(width, height int) string {
	rail := lipgloss.NewStyle().
		Width(railWidth).
		Height(height).
		BorderRight(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		Render(theme.Title.Render(" Analytics") + "\n\n" + s.menu.View())

	canvasWidth := max(width-railWidth-3, 20)
	canvas := lipgloss.NewStyle().
		Width(canvasWidth).
		Padding(0, 1).
		Render(s.renderCanvas(canvasWidth - 2))

	return lipgloss.JoinHorizontal(lipgloss.Top, rail, canvas)
}

func (s *DashboardScreen) renderCanvas(width int) string {
	heading := theme.Title.Render(s.dash.Title())
	if s.dash.ShowsDateRange() {
		gap := max(width-lipgloss.Width(heading)-len(simulator.DateRange), 1)
		heading += strings.Repeat(" ", gap) + theme.Subtitle.Render(simulator.DateRange)
	}

	var body string
	switch s.dash.View() {
	case simulator.ViewHome:
		body = renderHome(width)
	case simulator.ViewAcquisition:
		body = renderAcquisition(width)
	case simulator.ViewEvents:
		body = renderEvents(width)
	case simulator.ViewAdmin:
		body = renderAdmin(width)
	default:
		body = theme.Hint.Width(width).Render(simulator.PlaceholderText)
	}
	return heading + "\n\n" + body
}

func renderHome(width int) string {
	var countries []string
	for _, c := range simulator.RealtimeCountries {
		countries = append(countries, fmt.Sprintf("  %-16s %s", c.Country, c.Share))
	}
	realtime := theme.Card.Width(width).Render(
		theme.Label.Render("Users in last 30 minutes") + "\n" +
			theme.Title.Render(fmt.Sprint(simulator.RealtimeUsers)) + "  " +
			theme.Correct.Render("▲ "+simulator.RealtimeChange) + "\n" +
			strings.Join(countries, "\n") + "\n" +
			theme.Hint.Render("press r to view realtime"))

	var suggestions []string
	for _, sg := range simulator.Suggestions {
		suggestions = append(suggestions, theme.Body.Render(sg.Question)+"\n"+theme.Subtitle.Render("  "+sg.Hint))
	}
	return realtime + "\n\n" + theme.Label.Render("Suggested for you") + "\n" + strings.Join(suggestions, "\n")
}

func renderAcquisition(width int) string {
	rows := make([][]string, 0, len(simulator.AcquisitionRows))
	for _, r := range simulator.AcquisitionRows {
		rows = append(rows, []string{r.Channel, r.Users, r.Sessions, r.Engaged, r.Conversions})
	}
	return theme.Label.Render("Users over time") + "\n" +
		sparkline(simulator.AcquisitionTrend) + "\n\n" +
		renderTable(simulator.AcquisitionHeaders, rows, width)
}

func renderEvents(width int) string {
	rows := make([][]string, 0, len(simulator.EventRows))
	for _, r := range simulator.EventRows {
		rows = append(rows, []string{r.Name, r.Count, r.Users})
	}
	return renderTable(simulator.EventHeaders, rows, width)
}

func renderAdmin(width int) string {
	col := max((width-2)/2, 20)
	list := func(title string, items []string) string {
		return theme.Panel.Width(col).Render(theme.Label.Render(title) + "\n" + strings.Join(items, "\n"))
	}
	settings := lipgloss.JoinHorizontal(lipgloss.Top,
		list("Account settings", simulator.AccountSettings), " ",
		list("Property settings", simulator.PropertySettings))

	stream := theme.Card.Width(width).Render(
		theme.Label.Render("Data streams") + "\n" +
			fmt.Sprintf("%s  %s  %s", simulator.DataStream.Kind, simulator.DataStream.Name, theme.Subtitle.Render(simulator.DataStream.ID)))
	return settings + "\n" + stream
}

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

func sparkline(values []int) string {
	top := 0
	for _, v := range values {
		top = max(top, v)
	}
	if top == 0 {
		return ""
	}
	var b strings.Builder
	for _, v := range values {
		b.WriteRune(sparkLevels[v*(len(sparkLevels)-1)/top])
		b.WriteRune(' ')
	}
	return lipgloss.NewStyle().Foreground(theme.Secondary).Render(b.String())
}

func renderTable(headers []string, rows [][]string, width int) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(headers...).
		Rows(rows...).
		Width(width).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Foreground(theme.TextDim).Bold(true)
			}
			if col > 0 {
				style = style.Align(lipgloss.Right)
			}
			return style.Foreground(theme.Text)
		}).
		Render()
}
