// Package present turns conversation logs into an ordered view model
// that both the terminal UI and the HTTP API render.
package present

import (
	"github.com/abhisek/ga4tutor/internal/conversation"
	"github.com/abhisek/ga4tutor/internal/lessons"
)

// BubbleKind tags a rendered log entry.
type BubbleKind string

const (
	BubbleUser     BubbleKind = "user"
	BubbleText     BubbleKind = "text"
	BubbleThinking BubbleKind = "thinking"
	BubbleCard     BubbleKind = "card"
)

// Bubble is one rendered message.
type Bubble struct {
	Kind      BubbleKind `json:"kind"`
	MessageID string     `json:"message_id"`
	Text      string     `json:"text,omitempty"`
	Card      *Card      `json:"card,omitempty"`
}

// Thread is a rendered log plus the indicators shown around it.
type Thread struct {
	Bubbles []Bubble `json:"bubbles"`

	// Placeholder is set for an empty, idle log ("Initializing Tutor...").
	Placeholder bool `json:"placeholder,omitempty"`

	// Typing is set while a reply is pending on a non-empty log.
	Typing bool `json:"typing,omitempty"`
}

// PlaceholderText is shown for an empty log.
const PlaceholderText = "Initializing Tutor..."

// Render maps every message of log to a bubble, in order. User messages
// render literally; model messages render as a card when they carry a
// tutoring screen and as plain text otherwise. The log is not modified.
func Render(log []conversation.Message) []Bubble {
	bubbles := make([]Bubble, 0, len(log))
	for _, msg := range log {
		bubbles = append(bubbles, renderMessage(msg))
	}
	return bubbles
}

// RenderThread renders log and sets the indicators for busy.
func RenderThread(log []conversation.Message, busy bool) Thread {
	return Thread{
		Bubbles:     Render(log),
		Placeholder: len(log) == 0 && !busy,
		Typing:      len(log) > 0 && busy,
	}
}

func renderMessage(msg conversation.Message) Bubble {
	b := Bubble{MessageID: msg.ID, Text: msg.Text}

	if msg.Role == conversation.RoleUser {
		b.Kind = BubbleUser
		return b
	}

	screen, err := lessons.Decode(msg.Text)
	switch {
	case err == nil:
		b.Kind = BubbleCard
		b.Text = ""
		b.Card = NewCard(screen)
	case msg.Text == "":
		b.Kind = BubbleThinking
	default:
		b.Kind = BubbleText
	}
	return b
}
