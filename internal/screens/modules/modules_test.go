package modules

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ga4tutor/internal/lessons"
)

func TestNew_ListsEveryModule(t *testing.T) {
	s := New("")
	if len(s.menu.Items) != len(lessons.Modules) {
		t.Fatalf("expected %d items, got %d", len(lessons.Modules), len(s.menu.Items))
	}
	if s.menu.Items[0].Label != "Module 1: "+lessons.Modules[0].Title {
		t.Errorf("unexpected first label %q", s.menu.Items[0].Label)
	}
	last := s.menu.Items[len(s.menu.Items)-1]
	if last.Label != "Interview Prep" {
		t.Errorf("expected interview prep label without number, got %q", last.Label)
	}
}

func TestNew_MarksCurrent(t *testing.T) {
	s := New("3")
	if s.menu.Selected != 2 {
		t.Errorf("expected module 3 preselected, got index %d", s.menu.Selected)
	}
	if !s.menu.Items[2].Current || s.menu.Items[0].Current {
		t.Error("expected only module 3 marked current")
	}
}

func TestShortcut_StartsInterviewPrep(t *testing.T) {
	s := New("1")
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'i', Text: "i"})
	if cmd == nil {
		t.Fatal("expected a command for the interview prep shortcut")
	}
	if s.menu.Items[s.menu.Selected].Label != "Interview Prep" {
		t.Errorf("expected interview prep selected, got %q", s.menu.Items[s.menu.Selected].Label)
	}
}

func TestEnter_SelectsModule(t *testing.T) {
	s := New("")
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on enter")
	}
}

func TestView_ShowsTitles(t *testing.T) {
	s := New("")
	out := s.View(100, 30)
	if out == "" {
		t.Fatal("expected non-empty view")
	}
}
