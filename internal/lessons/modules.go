package lessons

import "strconv"

// Module is one entry of the learning path.
type Module struct {
	ID          string
	Title       string
	Description string
	Topics      []string
}

// Modules is the learning path in display order. Interview Prep is not a
// numbered module but is selected the same way.
var Modules = []Module{
	{
		ID:          "1",
		Title:       "UA vs GA4: The Shift",
		Description: "Deep dive into the differences: Events, Users, Sessions, and Engagement.",
		Topics:      []string{"Events vs Sessions", "Active Users", "Engagement Rate"},
	},
	{
		ID:          "2",
		Title:       "Collect & Manage Data",
		Description: "Master events, ecommerce, lead gen, and data imports.",
		Topics:      []string{"Events & Key Events", "Ecommerce", "Integrations"},
	},
	{
		ID:          "3",
		Title:       "Interface Overview",
		Description: "Navigating reports, explorations, and realtime data.",
		Topics:      []string{"Standard Reports", "Explorations", "Realtime"},
	},
	{
		ID:          "4",
		Title:       "User Behavior",
		Description: "Analyzing events, traffic, and engagement.",
		Topics:      []string{"Traffic Sources", "Engagement Rate", "Conversions"},
	},
	{
		ID:          "5",
		Title:       "Setup & Config",
		Description: "Setting up tags, debug view, and custom events.",
		Topics:      []string{"DebugView", "Custom Events", "Configuration"},
	},
	{
		ID:          InterviewPrepID,
		Title:       "Interview Prep",
		Description: "Pick a role and practice the questions it gets asked.",
		Topics:      []string{"Roles", "Scenarios"},
	},
}

// FindModule looks up a learning path entry by ID.
func FindModule(id string) (Module, bool) {
	for _, m := range Modules {
		if m.ID == id {
			return m, true
		}
	}
	return Module{}, false
}

// ModuleKey returns the identifier the model uses for a module in
// ui_state.current_module_id and progress.module_completion ("mod1").
func ModuleKey(id string) string {
	if _, err := strconv.Atoi(id); err != nil {
		return id
	}
	return "mod" + id
}
