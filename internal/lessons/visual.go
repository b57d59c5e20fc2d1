package lessons

import "github.com/tidwall/gjson"

// MetricComparison contrasts one metric between Universal Analytics and GA4.
type MetricComparison struct {
	Metric  string
	UA      string
	GA4     string
	Insight string
}

// ComparisonTable is a header row plus body rows of cells. Legacy is set
// when the rows arrived as {feature, ua, ga4} objects rather than arrays.
type ComparisonTable struct {
	Headers []string // nil when the payload carried no headers
	Rows    [][]string
	Legacy  bool
}

// Report is a report card of headline metrics.
type Report struct {
	Title   string
	Metrics []ReportMetric
}

// ReportMetric is one line of a report card.
type ReportMetric struct {
	Name   string
	Value  string
	Change string // "+12%" or "-3%"; empty when absent
	Icon   string // "users", "activity" or anything else
}

// StatusList is a titled list of labelled statuses.
type StatusList struct {
	Title string
	Items []StatusItem
}

// StatusItem is one row of a status list. Status is usually "checked",
// "pending" or "key_event" but any string is allowed.
type StatusItem struct {
	Label  string
	Status string
}

// Funnel is an ordered set of funnel steps.
type Funnel struct {
	Title string
	Steps []FunnelStep
}

// FunnelStep is one funnel stage.
type FunnelStep struct {
	Label     string
	Value     float64
	ValueText string // the value as the payload spelled it
	Highlight bool
}

// RoleDetails is a job-role dossier for interview practice.
type RoleDetails struct {
	Role             string
	Responsibilities []string // nil when absent
	Metrics          []string
	Tools            []string
	Scenario         string
}

func (b ContentBlock) data() gjson.Result {
	if len(b.Data) == 0 {
		return gjson.Result{}
	}
	return gjson.ParseBytes(b.Data)
}

// MetricComparison reads the block data as a metric comparison.
func (b ContentBlock) MetricComparison() MetricComparison {
	d := b.data()
	return MetricComparison{
		Metric:  d.Get("metric").String(),
		UA:      d.Get("ua").String(),
		GA4:     d.Get("ga4").String(),
		Insight: d.Get("insight").String(),
	}
}

// ComparisonTable reads the block data as a table. Rows are read as
// arrays of cells when the first row is an array, otherwise as legacy
// {feature, ua, ga4} objects.
func (b ContentBlock) ComparisonTable() ComparisonTable {
	d := b.data()

	t := ComparisonTable{Headers: presentStrings(d.Get("headers"))}

	rows := arrayOf(d.Get("rows"))
	if len(rows) == 0 {
		return t
	}
	t.Legacy = !rows[0].IsArray()

	for _, row := range rows {
		if t.Legacy {
			t.Rows = append(t.Rows, []string{
				row.Get("feature").String(),
				row.Get("ua").String(),
				row.Get("ga4").String(),
			})
			continue
		}
		t.Rows = append(t.Rows, stringsOf(row))
	}
	return t
}

// Report reads the block data as a report card.
func (b ContentBlock) Report() Report {
	d := b.data()
	r := Report{Title: d.Get("title").String()}
	for _, m := range arrayOf(d.Get("metrics")) {
		r.Metrics = append(r.Metrics, ReportMetric{
			Name:   m.Get("name").String(),
			Value:  m.Get("value").String(),
			Change: m.Get("change").String(),
			Icon:   m.Get("icon").String(),
		})
	}
	return r
}

// StatusList reads the block data as a status list.
func (b ContentBlock) StatusList() StatusList {
	d := b.data()
	l := StatusList{Title: d.Get("title").String()}
	for _, item := range arrayOf(d.Get("items")) {
		l.Items = append(l.Items, StatusItem{
			Label:  item.Get("label").String(),
			Status: item.Get("status").String(),
		})
	}
	return l
}

// Funnel reads the block data as funnel steps.
func (b ContentBlock) Funnel() Funnel {
	d := b.data()
	f := Funnel{Title: d.Get("title").String()}
	for _, s := range arrayOf(d.Get("steps")) {
		v := s.Get("value")
		f.Steps = append(f.Steps, FunnelStep{
			Label:     s.Get("label").String(),
			Value:     v.Float(),
			ValueText: v.String(),
			Highlight: s.Get("highlight").Bool(),
		})
	}
	return f
}

// MinFunnelBarPercent keeps small funnel stages visible.
const MinFunnelBarPercent = 15

// BarPercent returns the width of step i as a percentage of the largest
// step, never below MinFunnelBarPercent. A funnel whose largest value is
// zero or negative is scaled against 100.
func (f Funnel) BarPercent(i int) float64 {
	if i < 0 || i >= len(f.Steps) {
		return 0
	}
	var maxVal float64
	for _, s := range f.Steps {
		maxVal = max(maxVal, s.Value)
	}
	if maxVal <= 0 {
		maxVal = 100
	}
	pct := f.Steps[i].Value / maxVal * 100
	return min(max(pct, MinFunnelBarPercent), 100)
}

// RoleDetails reads the block data as a role dossier.
func (b ContentBlock) RoleDetails() RoleDetails {
	d := b.data()
	return RoleDetails{
		Role:             d.Get("role").String(),
		Responsibilities: presentStrings(d.Get("responsibilities")),
		Metrics:          stringsOf(d.Get("metrics")),
		Tools:            stringsOf(d.Get("tools")),
		Scenario:         d.Get("scenario").String(),
	}
}

// presentStrings is like stringsOf but distinguishes an empty array
// (non-nil, zero length) from an absent one (nil).
func presentStrings(r gjson.Result) []string {
	if !r.IsArray() {
		return nil
	}
	if out := stringsOf(r); out != nil {
		return out
	}
	return []string{}
}
