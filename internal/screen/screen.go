package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ga4tutor/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is an optional interface for screens that show a status
// label on the right of the header.
type StatusProvider interface {
	Status() string
}

// Broadcast marks messages the app delivers to every screen on the stack
// instead of only the active one.
type Broadcast interface {
	Broadcast()
}
