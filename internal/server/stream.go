package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/abhisek/ga4tutor/internal/conversation"
	"github.com/abhisek/ga4tutor/internal/present"
)

// streamEvent is pushed to websocket clients.
type streamEvent struct {
	Type    string           `json:"type"`
	Text    string           `json:"text,omitempty"`
	Error   string           `json:"error,omitempty"`
	Bubbles []present.Bubble `json:"bubbles,omitempty"`
}

const (
	eventFragment = "fragment"
	eventDone     = "done"
	eventError    = "error"
)

// handleStream accepts {text} messages and streams each reply back as
// fragment events followed by a done event with the rendered log.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	mode, ok := conversationMode(w, r)
	if !ok {
		return
	}

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		s.logger.Error("websocket accept failed", "error", err)
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "conversation ended"); closeErr != nil {
			s.logger.Debug("websocket close failed", "error", closeErr)
		}
	}()

	ctx := r.Context()
	for {
		var req messageRequest
		if err := wsjson.Read(ctx, ws, &req); err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure && !errors.Is(err, context.Canceled) {
				s.logger.Debug("websocket read ended", "error", err)
			}
			return
		}
		if err := s.streamTurn(ctx, ws, mode, req.Text); err != nil {
			s.logger.Debug("websocket write failed", "error", err)
			return
		}
	}
}

func (s *Server) streamTurn(ctx context.Context, ws *websocket.Conn, mode conversation.Mode, text string) error {
	var writeErr error
	err := s.tutor.SendTo(ctx, mode, text, func(fragment string) {
		if writeErr != nil {
			return
		}
		writeErr = wsjson.Write(ctx, ws, streamEvent{Type: eventFragment, Text: fragment})
	})
	if writeErr != nil {
		return writeErr
	}

	if errors.Is(err, conversation.ErrBusy) {
		return wsjson.Write(ctx, ws, streamEvent{Type: eventError, Error: err.Error()})
	}
	done := streamEvent{Type: eventDone, Bubbles: present.Render(s.tutor.Store().Log(mode))}
	if err != nil {
		s.logger.Error("streamed turn failed", "mode", mode, "error", err)
		done.Error = err.Error()
	}
	return wsjson.Write(ctx, ws, done)
}
