// Package simulator holds the static mock analytics dashboard used as a
// teaching aid. Nothing here talks to a real property.
package simulator

// Nav is a left-rail section.
type Nav string

const (
	NavHome    Nav = "home"
	NavReports Nav = "reports"
	NavExplore Nav = "explore"
	NavAdmin   Nav = "admin"
)

// NavItems lists the rail in display order.
var NavItems = []struct {
	Nav   Nav
	Label string
}{
	{NavHome, "Home"},
	{NavReports, "Reports"},
	{NavExplore, "Explore"},
	{NavAdmin, "Admin"},
}

// Report is one selectable report.
type Report string

const (
	ReportSnapshot    Report = "snapshot"
	ReportRealtime    Report = "realtime"
	ReportAcquisition Report = "acquisition"
	ReportEvents      Report = "engagement"
)

// ReportItems lists the selectable reports in menu order.
var ReportItems = []struct {
	Report Report
	Label  string
}{
	{ReportSnapshot, "Reports snapshot"},
	{ReportRealtime, "Realtime"},
	{ReportAcquisition, "Traffic acquisition"},
	{ReportEvents, "Events"},
}

// ReportGroup is a static, non-selectable menu group.
type ReportGroup struct {
	Label string
	Items []string
	Open  bool
}

var ReportGroups = []ReportGroup{
	{Label: "Acquisition", Items: []string{"Overview", "User acquisition", "Traffic acquisition"}, Open: true},
	{Label: "Engagement", Items: []string{"Overview", "Events", "Conversions", "Pages and screens"}, Open: true},
	{Label: "Monetization", Items: []string{"Overview", "Ecommerce purchases"}},
}

// AcquisitionRow is a traffic acquisition table row.
type AcquisitionRow struct {
	Channel     string
	Users       string
	Sessions    string
	Engaged     string
	Conversions string
}

var AcquisitionHeaders = []string{"Session default channel group", "Users", "Sessions", "Engaged sessions", "Conversions"}

var AcquisitionRows = []AcquisitionRow{
	{"Organic Search", "12,405", "15,200", "65%", "420"},
	{"Direct", "5,200", "6,100", "52%", "180"},
	{"Paid Search", "3,150", "3,800", "48%", "110"},
	{"Organic Social", "2,800", "3,200", "70%", "95"},
	{"Email", "1,500", "1,900", "85%", "240"},
}

// AcquisitionTrend is the users-over-time chart, in tens of users.
var AcquisitionTrend = []int{40, 60, 45, 80, 55, 70, 90, 65, 50, 75, 85, 60}

// EventRow is an events report row.
type EventRow struct {
	Name  string
	Count string
	Users string
}

var EventHeaders = []string{"Event name", "Event count", "Total users"}

var EventRows = []EventRow{
	{"page_view", "45,200", "18,500"},
	{"session_start", "22,100", "18,500"},
	{"view_item", "12,500", "8,200"},
	{"add_to_cart", "3,200", "2,100"},
	{"begin_checkout", "1,800", "1,500"},
	{"purchase", "850", "820"},
}

// Realtime card on the home view.
const (
	RealtimeUsers  = 142
	RealtimeChange = "4.2%"
)

// CountryShare is a realtime breakdown line.
type CountryShare struct {
	Country string
	Share   string
}

var RealtimeCountries = []CountryShare{
	{"United States", "65%"},
	{"India", "12%"},
}

// Suggestions shown on the home view.
var Suggestions = []struct {
	Question string
	Hint     string
}{
	{"Where do your new users come from?", "View traffic acquisition report"},
	{"How much revenue are you generating?", "View ecommerce purchases"},
}

// Admin settings.
var (
	PropertySettings = []string{"Property details", "Data streams", "Events", "Conversions", "Audiences"}
	AccountSettings  = []string{"Account details", "User management", "Filters", "Change history"}
)

// DataStream is the mock web stream shown under Admin.
var DataStream = struct {
	Name string
	Kind string
	ID   string
}{"GA4 Micro-Tutor Web", "Web", "29841029"}

const (
	DateRange       = "Last 28 days"
	DemoAccountURL  = "https://analytics.google.com/analytics/web/?utm_source=demoaccount&utm_medium=demoaccount&utm_campaign=demoaccount#/a54516992p213025502/reports/intelligenthome"
	PlaceholderText = "This part of the interface is a simplified visual placeholder. Try Reports > Traffic acquisition or Admin for more interactive elements."
)
