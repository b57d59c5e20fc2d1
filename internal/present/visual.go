package present

import (
	"strings"

	"github.com/abhisek/ga4tutor/internal/lessons"
)

// Visual defaults.
const (
	DefaultMetricName  = "Metric"
	DefaultMetricValue = "-"
	DefaultReportTitle = "Report"
	DefaultRoleTitle   = "Role Details"
	NoDetailsText      = "No details available"
)

// DefaultTableHeaders are used when a comparison table has none.
var DefaultTableHeaders = []string{"Feature", "Universal Analytics", "GA4"}

// Visual is a rendered visual block. Exactly one of the typed fields is
// set, matching Kind, except for event_vs_session which has no data.
type Visual struct {
	Kind string `json:"kind"`

	Metric *MetricComparison `json:"metric,omitempty"`
	Table  *Table            `json:"table,omitempty"`
	Report *Report           `json:"report,omitempty"`
	Status *StatusList       `json:"status,omitempty"`
	Funnel *Funnel           `json:"funnel,omitempty"`
	Role   *Role             `json:"role,omitempty"`
}

type MetricComparison struct {
	Metric  string `json:"metric"`
	UA      string `json:"ua"`
	GA4     string `json:"ga4"`
	Insight string `json:"insight,omitempty"`
}

type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

type Report struct {
	Title   string         `json:"title"`
	Metrics []ReportMetric `json:"metrics"`
}

// ReportMetric is a report line. Trend is +1 for a change starting with
// '+', -1 for any other change and 0 when there is none.
type ReportMetric struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Change string `json:"change,omitempty"`
	Trend  int    `json:"trend"`
	Icon   string `json:"icon"`
}

type StatusList struct {
	Title string       `json:"title,omitempty"`
	Items []StatusItem `json:"items"`
}

// StatusItem carries the display badge for a status.
type StatusItem struct {
	Label  string `json:"label"`
	Status string `json:"status"`
	Badge  string `json:"badge"`
}

type Funnel struct {
	Title string       `json:"title,omitempty"`
	Steps []FunnelStep `json:"steps"`
}

type FunnelStep struct {
	Label     string  `json:"label"`
	Value     string  `json:"value"`
	Percent   float64 `json:"percent"`
	Highlight bool    `json:"highlight,omitempty"`
}

type Role struct {
	Role             string   `json:"role"`
	Responsibilities []string `json:"responsibilities"`
	Metrics          []string `json:"metrics,omitempty"`
	Tools            []string `json:"tools,omitempty"`
	Scenario         string   `json:"scenario,omitempty"`
}

// Status badges.
const (
	BadgeChecked  = "✓"
	BadgePending  = "…"
	BadgeKeyEvent = "★ Key Event"
)

func newVisual(cb lessons.ContentBlock) *Visual {
	v := &Visual{Kind: cb.VisualType}

	switch cb.VisualType {
	case lessons.VisualEventVsSession:
	case lessons.VisualMetricComparison:
		m := cb.MetricComparison()
		v.Metric = &MetricComparison{
			Metric:  orDefault(m.Metric, DefaultMetricName),
			UA:      orDefault(m.UA, DefaultMetricValue),
			GA4:     orDefault(m.GA4, DefaultMetricValue),
			Insight: m.Insight,
		}
	case lessons.VisualComparisonTable:
		t := cb.ComparisonTable()
		headers := t.Headers
		if headers == nil {
			headers = DefaultTableHeaders
		}
		v.Table = &Table{Headers: headers, Rows: t.Rows}
	case lessons.VisualReport:
		v.Report = newReport(cb.Report())
	case lessons.VisualStatusList:
		l := cb.StatusList()
		v.Status = &StatusList{Title: l.Title}
		for _, item := range l.Items {
			v.Status.Items = append(v.Status.Items, StatusItem{
				Label:  item.Label,
				Status: item.Status,
				Badge:  statusBadge(item.Status),
			})
		}
	case lessons.VisualFunnel:
		f := cb.Funnel()
		v.Funnel = &Funnel{Title: f.Title}
		for i, s := range f.Steps {
			v.Funnel.Steps = append(v.Funnel.Steps, FunnelStep{
				Label:     s.Label,
				Value:     s.ValueText,
				Percent:   f.BarPercent(i),
				Highlight: s.Highlight,
			})
		}
	case lessons.VisualRoleDetails:
		r := cb.RoleDetails()
		responsibilities := r.Responsibilities
		if responsibilities == nil {
			responsibilities = []string{NoDetailsText}
		}
		v.Role = &Role{
			Role:             orDefault(r.Role, DefaultRoleTitle),
			Responsibilities: responsibilities,
			Metrics:          r.Metrics,
			Tools:            r.Tools,
			Scenario:         r.Scenario,
		}
	default:
		return nil
	}
	return v
}

func newReport(r lessons.Report) *Report {
	out := &Report{Title: orDefault(r.Title, DefaultReportTitle)}
	for _, m := range r.Metrics {
		rm := ReportMetric{
			Name:   m.Name,
			Value:  m.Value,
			Change: m.Change,
			Icon:   m.Icon,
		}
		switch {
		case m.Change == "":
		case strings.HasPrefix(m.Change, "+"):
			rm.Trend = 1
		default:
			rm.Trend = -1
		}
		if rm.Icon != "users" && rm.Icon != "activity" {
			rm.Icon = "trend"
		}
		out.Metrics = append(out.Metrics, rm)
	}
	return out
}

func statusBadge(status string) string {
	switch status {
	case "checked":
		return BadgeChecked
	case "pending":
		return BadgePending
	case "key_event":
		return BadgeKeyEvent
	default:
		return status
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
