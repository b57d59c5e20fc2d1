package tutor

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ga4tutor/internal/conversation"
)

// bootstrapDoneMsg is sent when the lesson greeting has been fetched.
type bootstrapDoneMsg struct {
	Err error
}

// fragmentMsg carries one streamed piece of a reply. ch delivers the
// rest of the stream.
type fragmentMsg struct {
	Mode conversation.Mode
	Text string
	ch   <-chan tea.Msg
}

// sendDoneMsg ends a stream.
type sendDoneMsg struct {
	Mode conversation.Mode
	Err  error
}

// modeSwitchedMsg is sent after a mode change has been applied.
type modeSwitchedMsg struct {
	Mode conversation.Mode
	Err  error
}

// typingTickMsg animates the typing indicator while a reply streams.
type typingTickMsg time.Time

// Async results must reach the tutor screen even while another screen
// is on top of it.
func (bootstrapDoneMsg) Broadcast() {}
func (fragmentMsg) Broadcast()      {}
func (sendDoneMsg) Broadcast()      {}
func (typingTickMsg) Broadcast()    {}
