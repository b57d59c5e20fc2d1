package chat

import "fmt"

// SessionInitError is returned when a session handle cannot be created.
type SessionInitError struct {
	Kind Kind
	Err  error
}

func (e *SessionInitError) Error() string {
	return fmt.Sprintf("init %s session: %v", e.Kind, e.Err)
}

func (e *SessionInitError) Unwrap() error {
	return e.Err
}

// StreamError is yielded when a turn fails after it was sent, including
// failures in the middle of a streamed reply.
type StreamError struct {
	Kind Kind
	Err  error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("%s stream: %v", e.Kind, e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}
