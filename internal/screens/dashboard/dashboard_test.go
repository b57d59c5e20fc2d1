package dashboard

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ga4tutor/internal/simulator"
)

func TestNew_OpensAcquisition(t *testing.T) {
	s := New()
	if s.dash.View() != simulator.ViewAcquisition {
		t.Fatalf("expected acquisition view, got %v", s.dash.View())
	}
	if label := s.menu.Items[s.menu.Selected].Label; label != "Reports › Traffic acquisition" {
		t.Errorf("expected acquisition selected in rail, got %q", label)
	}
}

func TestRail_SelectsHome(t *testing.T) {
	s := New()
	s.menu.Selected = 0
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.dash.View() != simulator.ViewHome {
		t.Fatalf("expected home view, got %v", s.dash.View())
	}
}

func TestRealtimeShortcut(t *testing.T) {
	s := New()
	s.dash.SelectNav(simulator.NavHome)

	s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})

	if s.dash.Title() != "Realtime" {
		t.Fatalf("expected realtime report, got %q", s.dash.Title())
	}
	if label := s.menu.Items[s.menu.Selected].Label; label != "Reports › Realtime" {
		t.Errorf("expected rail to follow the shortcut, got %q", label)
	}
}

func TestView_RendersTables(t *testing.T) {
	s := New()
	out := s.View(120, 40)
	for _, want := range []string{"Organic Search", simulator.DateRange} {
		if !strings.Contains(out, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}

	s.dash.SelectReport(simulator.ReportEvents)
	if !strings.Contains(s.View(120, 40), "purchase") {
		t.Error("expected events table")
	}
}

func TestSparkline(t *testing.T) {
	if sparkline(nil) != "" {
		t.Error("expected empty sparkline for no data")
	}
	if out := sparkline([]int{0, 10}); !strings.Contains(out, "█") {
		t.Errorf("expected peak glyph, got %q", out)
	}
}

func TestRail_MarksShownView(t *testing.T) {
	s := New()
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	var current []string
	for _, item := range s.menu.Items {
		if item.Current {
			current = append(current, item.Label)
		}
	}
	want := s.menu.Items[s.menu.Selected].Label
	if len(current) != 1 || current[0] != want {
		t.Fatalf("expected only %q marked current, got %v", want, current)
	}
}
