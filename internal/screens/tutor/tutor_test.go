package tutor

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ga4tutor/internal/chat"
	"github.com/abhisek/ga4tutor/internal/conversation"
	"github.com/abhisek/ga4tutor/internal/lessons"
	"github.com/abhisek/ga4tutor/internal/llm"
	"github.com/abhisek/ga4tutor/internal/present"
	"github.com/abhisek/ga4tutor/internal/router"
	"github.com/abhisek/ga4tutor/internal/screens/dashboard"
	"github.com/abhisek/ga4tutor/internal/screens/modules"
	"github.com/abhisek/ga4tutor/internal/ui/components"
)

const greeting = `{
  "ui_state": {"screen_title": "Hits vs Events", "current_module_id": "1", "current_step": 1},
  "content_blocks": [{"type": "lesson", "text": "Everything is an **event** in GA4."}],
  "next_actions": [
    {"label": "Show me", "action_type": "next_step"},
    {"label": "Open the simulator", "action_type": "switch_mode"}
  ],
  "progress": {"overall_completion": 10}
}`

func newTestScreen(t *testing.T, responses ...llm.MockResponse) (*TutorScreen, *conversation.Tutor, *llm.MockProvider) {
	t.Helper()
	mock := llm.NewMockProvider(responses...)
	reg := chat.NewRegistry(chat.StaticProvider(mock), chat.DefaultConfigs(llm.Config{Provider: "mock"}))
	tu := conversation.NewTutor(reg, nil)
	s := New(context.Background(), tu)
	s.View(100, 40)
	return s, tu, mock
}

// drain runs cmd and every command it leads to, feeding each message back
// into the screen. Navigation messages are collected instead of applied.
func drain(t *testing.T, s *TutorScreen, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	var nav []tea.Msg
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 1000 {
			t.Fatal("command queue did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case router.PushScreenMsg, router.PopScreenMsg:
			nav = append(nav, msg)
		default:
			_, c := s.Update(msg)
			queue = append(queue, c)
		}
	}
	return nav
}

func typeText(s *TutorScreen, text string) {
	s.input.Model.SetValue(text)
}

func TestInit_ShowsGreetingCard(t *testing.T) {
	s, tu, _ := newTestScreen(t, llm.MockResponse{Text: greeting})

	drain(t, s, s.Init())

	if got := tu.Store().Len(conversation.ModeLesson); got != 1 {
		t.Fatalf("expected greeting in lesson log, got %d messages", got)
	}
	out := s.View(100, 40)
	if !strings.Contains(out, "Hits vs Events") {
		t.Errorf("expected card title in view:\n%s", out)
	}
	if len(s.actions.Actions) != 2 {
		t.Errorf("expected greeting actions bound, got %d", len(s.actions.Actions))
	}
}

func TestInit_ConnectionFailure(t *testing.T) {
	s, _, _ := newTestScreen(t, llm.MockResponse{Err: errors.New("bad key")})

	drain(t, s, s.Init())

	if !strings.Contains(s.View(100, 40), "Connection failed") {
		t.Error("expected connection warning in view")
	}
	if !s.actions.Empty() {
		t.Error("expected no actions after a failed bootstrap")
	}
}

func TestSubmit_QA(t *testing.T) {
	s, tu, _ := newTestScreen(t, llm.MockResponse{Fragments: []string{"Events ", "have parameters."}})

	_, cmd := s.Update(tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl})
	drain(t, s, cmd)
	tu.Wait()
	if tu.Mode() != conversation.ModeQA {
		t.Fatalf("expected qa mode, got %q", tu.Mode())
	}
	if !strings.Contains(s.View(100, 40), "GA4 Expert Assistant") {
		t.Error("expected welcome text in view")
	}

	typeText(s, "What is an event?")
	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	drain(t, s, cmd)

	log := tu.Store().Log(conversation.ModeQA)
	if len(log) != 3 {
		t.Fatalf("expected welcome, question and answer, got %d", len(log))
	}
	if log[2].Text != "Events have parameters." {
		t.Errorf("unexpected answer %q", log[2].Text)
	}
	if s.input.Value() != "" {
		t.Error("expected input cleared after send")
	}
	if len(s.partial) != 0 {
		t.Error("expected no partial reply after the stream ended")
	}
}

func TestSubmit_BlankIgnored(t *testing.T) {
	s, _, mock := newTestScreen(t)

	typeText(s, "   ")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	drain(t, s, cmd)

	if mock.CallCount() != 0 {
		t.Fatalf("expected no provider call, got %d", mock.CallCount())
	}
}

func TestSubmit_StreamFailureShowsApology(t *testing.T) {
	s, tu, _ := newTestScreen(t,
		llm.MockResponse{Text: greeting},
		llm.MockResponse{Fragments: []string{"{"}, StreamErr: errors.New("reset")},
	)
	drain(t, s, s.Init())

	typeText(s, "Event")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	drain(t, s, cmd)

	log := tu.Store().Log(conversation.ModeLesson)
	if last := log[len(log)-1]; last.Text != conversation.LessonApologyText {
		t.Fatalf("expected apology, got %q", last.Text)
	}
	if s.input.Disabled {
		t.Error("expected input enabled after failure")
	}
}

func TestActionBar_SendsOutboundText(t *testing.T) {
	s, _, mock := newTestScreen(t,
		llm.MockResponse{Text: greeting},
		llm.MockResponse{Text: `{"ui_state": {"current_step": 2}}`},
	)
	drain(t, s, s.Init())

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if !s.actions.Focused {
		t.Fatal("expected tab to focus the action bar")
	}
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	drain(t, s, cmd)

	req, ok := mock.LastCall()
	if !ok {
		t.Fatal("expected a provider call")
	}
	if got := req.Messages[len(req.Messages)-1].Content; got != "Show me" {
		t.Errorf("expected action label sent, got %q", got)
	}
	if s.focus != focusInput {
		t.Error("expected focus back on the input")
	}
}

func TestActionBar_SecondActivationWhileSending(t *testing.T) {
	s, tu, mock := newTestScreen(t,
		llm.MockResponse{Text: greeting},
		llm.MockResponse{Fragments: []string{`{"ui_state":`, ` {"current_step": 2}}`}},
	)
	drain(t, s, s.Init())

	pick := components.ActionSelectedMsg{Action: present.Action{
		NextAction: lessons.NextAction{Label: "Show me", ActionType: lessons.ActionNextStep},
	}}
	_, first := s.Update(pick)
	if first == nil {
		t.Fatal("expected the first activation to start a send")
	}
	// The send goroutine has not run yet, so the store is not busy.
	if tu.Store().Busy(conversation.ModeLesson) {
		t.Fatal("store should not be claimed before the command runs")
	}
	if _, second := s.Update(pick); second != nil {
		t.Fatal("expected the second activation to be ignored")
	}

	drain(t, s, first)

	if mock.CallCount() != 2 {
		t.Errorf("expected greeting plus one send, got %d calls", mock.CallCount())
	}
	if got := tu.Store().Len(conversation.ModeLesson); got != 3 {
		t.Errorf("expected 3 lesson messages, got %d", got)
	}
	if _, ok := s.partial[conversation.ModeLesson]; ok {
		t.Error("expected the partial reply cleared once done")
	}
}

func TestActionBar_ModeSwitchOpensSimulator(t *testing.T) {
	s, tu, mock := newTestScreen(t, llm.MockResponse{Text: greeting})
	drain(t, s, s.Init())

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	nav := drain(t, s, cmd)

	if tu.Mode() != conversation.ModeSimulation {
		t.Fatalf("expected simulation mode, got %q", tu.Mode())
	}
	if len(nav) != 1 {
		t.Fatalf("expected one navigation message, got %d", len(nav))
	}
	push, ok := nav[0].(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", nav[0])
	}
	if _, ok := push.Screen.(*dashboard.DashboardScreen); !ok {
		t.Fatalf("expected dashboard screen, got %T", push.Screen)
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected no message sent for a mode switch, got %d calls", mock.CallCount())
	}

	_, cmd = s.Update(router.ResumedMsg{From: "Simulator"})
	drain(t, s, cmd)
	if tu.Mode() != conversation.ModeLesson {
		t.Errorf("expected lesson mode after leaving the simulator, got %q", tu.Mode())
	}
}

func TestModuleSelected_StartsModule(t *testing.T) {
	s, tu, mock := newTestScreen(t,
		llm.MockResponse{Text: greeting},
		llm.MockResponse{Text: `{"ui_state": {"screen_title": "Collecting data", "current_module_id": "2"}}`},
	)
	drain(t, s, s.Init())

	_, cmd := s.Update(modules.SelectedMsg{ModuleID: "2"})
	drain(t, s, cmd)

	req, _ := mock.LastCall()
	if got := req.Messages[len(req.Messages)-1].Content; got != lessons.StartMessage("2") {
		t.Errorf("expected start message, got %q", got)
	}
	if tu.Store().Len(conversation.ModeLesson) != 3 {
		t.Errorf("expected greeting, start and reply in lesson log")
	}
	if s.Status() != "Collect & Manage Data" {
		t.Errorf("unexpected status %q", s.Status())
	}
}

func TestCtrlO_PushesModulePicker(t *testing.T) {
	s, _, _ := newTestScreen(t)

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'o', Mod: tea.ModCtrl})
	nav := drain(t, s, cmd)

	if len(nav) != 1 {
		t.Fatalf("expected navigation, got %v", nav)
	}
	if _, ok := nav[0].(router.PushScreenMsg).Screen.(*modules.ModulesScreen); !ok {
		t.Fatal("expected the module picker")
	}
}

func TestLatestActions(t *testing.T) {
	s, tu, _ := newTestScreen(t, llm.MockResponse{Text: greeting})
	drain(t, s, s.Init())

	tu.Store().AppendUser(conversation.ModeLesson, "pending")
	s.refresh()
	if !s.actions.Empty() {
		t.Error("expected actions cleared once the card is no longer last")
	}
}
