package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/abhisek/ga4tutor/internal/chat"
	"github.com/abhisek/ga4tutor/internal/lessons"
)

// Fixed texts appended locally, without contacting the model.
const (
	ConnectionFailedText = "⚠️ Connection failed. Please check your API settings."
	LessonApologyText    = "Sorry, I encountered an error. Please try again."
	QAApologyText        = "Sorry, I couldn't process your question. Please try again."
	QAWelcomeText        = "Hi! I'm your GA4 Expert Assistant. \n\nI can help you with specific questions, troubleshooting, or explaining concepts in detail. \n\n**What would you like to know?**"
)

// ErrBusy is returned when a send is attempted on a mode that already
// has one in flight.
var ErrBusy = errors.New("conversation is busy")

// Tutor drives the application control flow: bootstrap, mode switches,
// sends and action activation.
type Tutor struct {
	store    *Store
	registry *chat.Registry
	logger   *slog.Logger

	mu   sync.Mutex
	mode Mode

	bootstrap sync.Once
	bootErr   error

	background sync.WaitGroup
}

// NewTutor creates a tutor in lesson mode. A nil logger discards logs.
func NewTutor(registry *chat.Registry, logger *slog.Logger) *Tutor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Tutor{
		store:    NewStore(),
		registry: registry,
		logger:   logger,
		mode:     ModeLesson,
	}
}

// Store returns the conversation logs.
func (t *Tutor) Store() *Store { return t.store }

// Mode returns the active mode.
func (t *Tutor) Mode() Mode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mode
}

// Bootstrap primes the lesson session and appends its greeting to the
// lesson log. It runs once per tutor; later calls return the first
// result. On failure the lesson log gets a connection warning instead.
// It returns ErrBusy, without priming, while a lesson turn is in flight.
func (t *Tutor) Bootstrap(ctx context.Context) error {
	if !t.store.tryBusy(ModeLesson) {
		return ErrBusy
	}
	return t.boot(ctx)
}

// StartBootstrap claims the lesson log before returning and runs
// Bootstrap in the background, so lesson sends made in the meantime get
// ErrBusy. Wait blocks until it has finished.
func (t *Tutor) StartBootstrap(ctx context.Context) error {
	if !t.store.tryBusy(ModeLesson) {
		return ErrBusy
	}
	t.background.Add(1)
	go func() {
		defer t.background.Done()
		_ = t.boot(ctx)
	}()
	return nil
}

// boot expects the lesson busy flag to be held by the caller and
// releases it.
func (t *Tutor) boot(ctx context.Context) error {
	defer t.store.SetBusy(ModeLesson, false)

	t.bootstrap.Do(func() {
		greeting, err := t.registry.Prime(ctx)
		if err != nil {
			t.logger.Error("lesson bootstrap failed", "error", err)
			t.store.AppendModel(ModeLesson, ConnectionFailedText)
			t.bootErr = err
			return
		}
		t.store.AppendModel(ModeLesson, greeting)
		t.lint(greeting)
	})
	return t.bootErr
}

// SwitchMode makes mode active. Entering Q&A with an empty log appends
// the welcome message and creates the Q&A session in the background.
func (t *Tutor) SwitchMode(ctx context.Context, mode Mode) error {
	if _, err := ParseMode(string(mode)); err != nil {
		return err
	}

	t.mu.Lock()
	t.mode = mode
	t.mu.Unlock()

	if mode == ModeQA && t.store.appendModelIfEmpty(ModeQA, QAWelcomeText) {
		t.background.Add(1)
		go func() {
			defer t.background.Done()
			if err := t.registry.Ensure(context.WithoutCancel(ctx), chat.KindQA); err != nil {
				t.logger.Error("qa session init failed", "error", err)
			}
		}()
	}
	return nil
}

// Wait blocks until background session initialization has finished.
func (t *Tutor) Wait() {
	t.background.Wait()
}

// Send sends text on the active mode. See SendTo.
func (t *Tutor) Send(ctx context.Context, text string, onFragment func(string)) error {
	return t.SendTo(ctx, t.Mode(), text, onFragment)
}

// SendTo appends text to the mode's log, streams the model reply and
// appends it once complete. onFragment, when set, sees every fragment as
// it arrives. A failed turn appends the mode's apology instead and the
// error is returned. Blank text and the simulation mode are no-ops;
// a busy mode returns ErrBusy.
func (t *Tutor) SendTo(ctx context.Context, mode Mode, text string, onFragment func(string)) error {
	text = strings.TrimSpace(text)
	if !mode.HasLog() || text == "" {
		return nil
	}
	if !t.store.tryBusy(mode) {
		return ErrBusy
	}
	defer t.store.SetBusy(mode, false)

	t.store.AppendUser(mode, text)

	kind := chat.KindLesson
	if mode == ModeQA {
		kind = chat.KindQA
	}

	var reply strings.Builder
	for fragment, err := range t.registry.SendAndStream(ctx, kind, text) {
		if err != nil {
			t.logger.Error("send failed", "mode", mode, "error", err)
			t.store.AppendModel(mode, apology(mode))
			return fmt.Errorf("%s send: %w", mode, err)
		}
		reply.WriteString(fragment)
		if onFragment != nil {
			onFragment(fragment)
		}
	}

	t.store.AppendModel(mode, reply.String())
	if mode == ModeLesson {
		t.lint(reply.String())
	}
	return nil
}

// Activate handles a screen action: switch_mode opens the simulator,
// anything else is sent as a message on the active mode.
func (t *Tutor) Activate(ctx context.Context, action lessons.NextAction, onFragment func(string)) error {
	if action.IsModeSwitch() {
		return t.SwitchMode(ctx, ModeSimulation)
	}
	return t.Send(ctx, action.OutboundText(), onFragment)
}

// SelectModule switches to lesson mode and asks the model to start the
// module with the given learning path ID.
func (t *Tutor) SelectModule(ctx context.Context, id string, onFragment func(string)) error {
	if _, ok := lessons.FindModule(id); !ok {
		return fmt.Errorf("unknown module %q", id)
	}
	if err := t.SwitchMode(ctx, ModeLesson); err != nil {
		return err
	}
	return t.SendTo(ctx, ModeLesson, lessons.StartMessage(id), onFragment)
}

// lint logs lesson turns whose payload drifts from the screen schema.
func (t *Tutor) lint(text string) {
	if err := lessons.Lint(text); err != nil {
		t.logger.Debug("lesson payload drift", "error", err)
	}
}

func apology(mode Mode) string {
	if mode == ModeQA {
		return QAApologyText
	}
	return LessonApologyText
}
