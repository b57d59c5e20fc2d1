package simulator

// View is what the dashboard canvas currently shows.
type View string

const (
	ViewHome        View = "home"
	ViewAcquisition View = "acquisition"
	ViewEvents      View = "events"
	ViewAdmin       View = "admin"
	ViewPlaceholder View = "placeholder"
)

// Dashboard is the navigation state of the mock dashboard. The zero
// value is not ready for use; call New.
type Dashboard struct {
	Nav    Nav
	Report Report
}

// New opens the dashboard on the traffic acquisition report.
func New() *Dashboard {
	return &Dashboard{Nav: NavReports, Report: ReportAcquisition}
}

// SelectNav switches the left-rail section.
func (d *Dashboard) SelectNav(n Nav) {
	d.Nav = n
}

// SelectReport opens a report, switching to the reports section.
func (d *Dashboard) SelectReport(r Report) {
	d.Nav = NavReports
	d.Report = r
}

// OpenRealtime is the home card's shortcut.
func (d *Dashboard) OpenRealtime() {
	d.SelectReport(ReportRealtime)
}

// View returns the canvas content for the current state.
func (d *Dashboard) View() View {
	switch d.Nav {
	case NavHome:
		return ViewHome
	case NavAdmin:
		return ViewAdmin
	case NavReports:
		switch d.Report {
		case ReportAcquisition:
			return ViewAcquisition
		case ReportEvents:
			return ViewEvents
		}
	}
	return ViewPlaceholder
}

// Title is the page heading.
func (d *Dashboard) Title() string {
	switch d.Nav {
	case NavHome:
		return "Home"
	case NavAdmin:
		return "Admin"
	case NavExplore:
		return "Explore"
	}
	for _, item := range ReportItems {
		if item.Report == d.Report {
			return item.Label
		}
	}
	return "Reports snapshot"
}

// ShowsDateRange reports whether the date range picker is visible.
func (d *Dashboard) ShowsDateRange() bool {
	return d.Nav == NavReports && d.Report != ReportRealtime
}
