package tutor

import (
	"context"
	"errors"
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ga4tutor/internal/conversation"
	"github.com/abhisek/ga4tutor/internal/lessons"
	"github.com/abhisek/ga4tutor/internal/present"
	"github.com/abhisek/ga4tutor/internal/router"
	"github.com/abhisek/ga4tutor/internal/screen"
	"github.com/abhisek/ga4tutor/internal/screens/dashboard"
	"github.com/abhisek/ga4tutor/internal/screens/modules"
	"github.com/abhisek/ga4tutor/internal/ui/components"
	"github.com/abhisek/ga4tutor/internal/ui/layout"
)

type focusArea int

const (
	focusInput focusArea = iota
	focusActions
)

// TutorScreen is the chat surface for the lesson and Q&A conversations.
type TutorScreen struct {
	tutor    *conversation.Tutor
	ctx      context.Context
	input    components.TextInput
	actions  components.ActionBar
	viewport viewport.Model
	md       *markdown

	focus    focusArea
	chatMode conversation.Mode // last lesson or qa mode, restored after the simulator
	module   string

	// partial holds the reply being streamed per mode. A key is present
	// from the moment a send is started until it is done.
	partial map[conversation.Mode]string

	width, height int
	follow        bool
	ticking       bool
	frame         int
}

var _ screen.Screen = (*TutorScreen)(nil)
var _ screen.KeyHintProvider = (*TutorScreen)(nil)
var _ screen.StatusProvider = (*TutorScreen)(nil)

// New creates the tutor screen over t.
func New(ctx context.Context, t *conversation.Tutor) *TutorScreen {
	return &TutorScreen{
		tutor:    t,
		ctx:      ctx,
		input:    components.NewTextInput("Ask a question or answer the tutor...", 0),
		viewport: viewport.New(),
		md:       newMarkdown(),
		chatMode: conversation.ModeLesson,
		partial:  make(map[conversation.Mode]string),
		follow:   true,
	}
}

func (s *TutorScreen) Init() tea.Cmd {
	s.partial[conversation.ModeLesson] = ""
	return tea.Batch(
		s.bootstrap(),
		s.input.Init(),
	)
}

func (s *TutorScreen) Title() string {
	switch s.tutor.Mode() {
	case conversation.ModeQA:
		return "Expert Q&A"
	default:
		return "Lesson"
	}
}

// Status names the active mode for the header.
func (s *TutorScreen) Status() string {
	if s.tutor.Store().Busy(s.tutor.Mode()) {
		return "typing..."
	}
	if s.module != "" {
		if m, ok := lessons.FindModule(s.module); ok {
			return m.Title
		}
	}
	return string(s.tutor.Mode())
}

func (s *TutorScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
	}
	if s.focus == focusActions {
		hints = []layout.KeyHint{
			{Key: "←→", Description: "Choose"},
			{Key: "Enter", Description: "Select"},
		}
	}
	if !s.actions.Empty() {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Actions"})
	}
	toggle := "Q&A"
	if s.tutor.Mode() == conversation.ModeQA {
		toggle = "Lesson"
	}
	return append(hints,
		layout.KeyHint{Key: "Ctrl+T", Description: toggle},
		layout.KeyHint{Key: "Ctrl+O", Description: "Modules"},
		layout.KeyHint{Key: "Ctrl+S", Description: "Simulator"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Quit"},
	)
}

func (s *TutorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case bootstrapDoneMsg:
		delete(s.partial, conversation.ModeLesson)
		s.refresh()
		return s, nil

	case fragmentMsg:
		s.partial[msg.Mode] += msg.Text
		s.refresh()
		return s, waitStream(msg.ch)

	case sendDoneMsg:
		return s.handleSendDone(msg)

	case typingTickMsg:
		if len(s.partial) == 0 {
			s.ticking = false
			return s, nil
		}
		s.frame++
		s.refresh()
		return s, typingTick()

	case modeSwitchedMsg:
		s.refresh()
		return s, nil

	case modules.SelectedMsg:
		return s.selectModule(msg.ModuleID)

	case router.ResumedMsg:
		return s.handleResumed()

	case components.ActionSelectedMsg:
		return s.activate(msg.Action)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *TutorScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "ctrl+t":
		next := conversation.ModeQA
		if s.tutor.Mode() == conversation.ModeQA {
			next = conversation.ModeLesson
		}
		return s, s.switchMode(next)

	case "ctrl+o":
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: modules.New(s.module)}
		}

	case "ctrl+s":
		return s, s.openSimulator()

	case "tab":
		if s.focus == focusInput && !s.actions.Empty() {
			s.setFocus(focusActions)
		} else {
			s.setFocus(focusInput)
		}
		s.refresh()
		return s, nil

	case "esc":
		if s.focus == focusActions {
			s.setFocus(focusInput)
			return s, nil
		}

	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		var cmd tea.Cmd
		s.viewport, cmd = s.viewport.Update(msg)
		s.follow = s.viewport.AtBottom()
		return s, cmd
	}

	if s.focus == focusActions {
		var cmd tea.Cmd
		s.actions, cmd = s.actions.Update(msg)
		return s, cmd
	}

	if msg.String() == "enter" {
		return s.submit()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *TutorScreen) setFocus(f focusArea) {
	s.focus = f
	s.actions.Focused = f == focusActions
	if f == focusInput {
		s.input.Focus()
	} else {
		s.input.Blur()
	}
}

func (s *TutorScreen) submit() (screen.Screen, tea.Cmd) {
	text := s.input.Value()
	mode := s.tutor.Mode()
	if text == "" || s.pending(mode) {
		return s, nil
	}
	s.input.Reset()
	s.follow = true
	return s, s.stream(mode, func(onFragment func(string)) error {
		return s.tutor.SendTo(s.ctx, mode, text, onFragment)
	})
}

func (s *TutorScreen) activate(a present.Action) (screen.Screen, tea.Cmd) {
	if present.IsModeSwitch(a.NextAction) {
		return s, s.openSimulator()
	}
	mode := s.tutor.Mode()
	if s.pending(mode) {
		return s, nil
	}
	s.setFocus(focusInput)
	s.follow = true
	return s, s.stream(mode, func(onFragment func(string)) error {
		return s.tutor.Activate(s.ctx, a.NextAction, onFragment)
	})
}

func (s *TutorScreen) selectModule(id string) (screen.Screen, tea.Cmd) {
	if s.pending(conversation.ModeLesson) {
		return s, nil
	}
	s.module = id
	s.chatMode = conversation.ModeLesson
	s.follow = true
	return s, s.stream(conversation.ModeLesson, func(onFragment func(string)) error {
		return s.tutor.SelectModule(s.ctx, id, onFragment)
	})
}

func (s *TutorScreen) openSimulator() tea.Cmd {
	if err := s.tutor.SwitchMode(s.ctx, conversation.ModeSimulation); err != nil {
		return nil
	}
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: dashboard.New()}
	}
}

func (s *TutorScreen) handleResumed() (screen.Screen, tea.Cmd) {
	if s.tutor.Mode() != conversation.ModeSimulation {
		s.refresh()
		return s, nil
	}
	return s, s.switchMode(s.chatMode)
}

func (s *TutorScreen) switchMode(mode conversation.Mode) tea.Cmd {
	if mode.HasLog() {
		s.chatMode = mode
	}
	err := s.tutor.SwitchMode(s.ctx, mode)
	s.setFocus(focusInput)
	s.follow = true
	return func() tea.Msg {
		return modeSwitchedMsg{Mode: mode, Err: err}
	}
}

func (s *TutorScreen) handleSendDone(msg sendDoneMsg) (screen.Screen, tea.Cmd) {
	delete(s.partial, msg.Mode)
	if msg.Err != nil && errors.Is(msg.Err, conversation.ErrBusy) {
		return s, nil
	}
	s.refresh()
	return s, nil
}

// pending reports whether mode has a turn in flight, including one this
// screen has started whose goroutine has not claimed the mode yet.
func (s *TutorScreen) pending(mode conversation.Mode) bool {
	if _, ok := s.partial[mode]; ok {
		return true
	}
	return s.tutor.Store().Busy(mode)
}

// bootstrap fetches the lesson greeting once.
func (s *TutorScreen) bootstrap() tea.Cmd {
	return func() tea.Msg {
		return bootstrapDoneMsg{Err: s.tutor.Bootstrap(s.ctx)}
	}
}

// stream runs send on a goroutine and feeds its fragments back into the
// update loop one message at a time.
func (s *TutorScreen) stream(mode conversation.Mode, send func(onFragment func(string)) error) tea.Cmd {
	s.partial[mode] = ""
	var tick tea.Cmd
	if !s.ticking {
		s.ticking = true
		tick = typingTick()
	}
	return tea.Batch(tick, func() tea.Msg {
		ch := make(chan tea.Msg, 16)
		go func() {
			defer close(ch)
			err := send(func(text string) {
				ch <- fragmentMsg{Mode: mode, Text: text, ch: ch}
			})
			ch <- sendDoneMsg{Mode: mode, Err: err}
		}()
		return <-ch
	})
}

func typingTick() tea.Cmd {
	return tea.Tick(300*time.Millisecond, func(t time.Time) tea.Msg {
		return typingTickMsg(t)
	})
}

func waitStream(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}
