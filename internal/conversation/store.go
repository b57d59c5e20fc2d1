// Package conversation holds the per-mode message logs and the controller
// that drives them against the remote chat sessions.
package conversation

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Mode is the application mode.
type Mode string

const (
	ModeLesson     Mode = "lesson"
	ModeQA         Mode = "qa"
	ModeSimulation Mode = "simulation"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeLesson, ModeQA, ModeSimulation:
		return m, nil
	default:
		return "", fmt.Errorf("unknown mode %q", s)
	}
}

// HasLog reports whether the mode keeps a conversation log.
func (m Mode) HasLog() bool {
	return m == ModeLesson || m == ModeQA
}

// Role is the author of a message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one immutable log entry.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Store keeps one append-only log and one busy flag per conversational
// mode. The simulation mode has neither: appends to it are ignored.
// Callers must not start a second send on a busy mode; the store does
// not enforce it.
type Store struct {
	mu   sync.RWMutex
	logs map[Mode][]Message
	busy map[Mode]bool

	now func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		logs: make(map[Mode][]Message),
		busy: make(map[Mode]bool),
		now:  time.Now,
	}
}

// AppendUser appends a user message and returns it.
func (s *Store) AppendUser(mode Mode, text string) Message {
	return s.append(mode, RoleUser, text)
}

// AppendModel appends a model message and returns it.
func (s *Store) AppendModel(mode Mode, text string) Message {
	return s.append(mode, RoleModel, text)
}

func (s *Store) newMessage(role Role, text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: s.now(),
	}
}

func (s *Store) append(mode Mode, role Role, text string) Message {
	msg := s.newMessage(role, text)
	if !mode.HasLog() {
		return msg
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs[mode] = append(s.logs[mode], msg)
	return msg
}

// appendModelIfEmpty appends a model message only when the mode's log is
// still empty, and reports whether it did.
func (s *Store) appendModelIfEmpty(mode Mode, text string) bool {
	if !mode.HasLog() {
		return false
	}
	msg := s.newMessage(RoleModel, text)

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.logs[mode]) > 0 {
		return false
	}
	s.logs[mode] = append(s.logs[mode], msg)
	return true
}

// Log returns a copy of the mode's log, oldest first.
func (s *Store) Log(mode Mode) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log := s.logs[mode]
	if log == nil {
		return nil
	}
	out := make([]Message, len(log))
	copy(out, log)
	return out
}

// Len returns the number of messages in the mode's log.
func (s *Store) Len(mode Mode) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.logs[mode])
}

// SetBusy sets the mode's busy flag.
func (s *Store) SetBusy(mode Mode, busy bool) {
	if !mode.HasLog() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy[mode] = busy
}

// Busy reports whether a send is in flight on the mode.
func (s *Store) Busy(mode Mode) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.busy[mode]
}

// tryBusy sets the busy flag unless it is already set.
func (s *Store) tryBusy(mode Mode) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy[mode] {
		return false
	}
	s.busy[mode] = true
	return true
}
