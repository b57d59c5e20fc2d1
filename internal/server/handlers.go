package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/ga4tutor/internal/conversation"
	"github.com/abhisek/ga4tutor/internal/lessons"
	"github.com/abhisek/ga4tutor/internal/present"
)

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

type stateResponse struct {
	Mode conversation.Mode `json:"mode"`
	Busy bool              `json:"busy"`
}

type modeRequest struct {
	Mode string `json:"mode"`
}

type messageRequest struct {
	Text string `json:"text"`
}

type actionRequest struct {
	Action lessons.NextAction `json:"action"`
}

func (s *Server) state() stateResponse {
	mode := s.tutor.Mode()
	return stateResponse{Mode: mode, Busy: s.tutor.Store().Busy(mode)}
}

func (s *Server) thread(mode conversation.Mode) present.Thread {
	store := s.tutor.Store()
	return present.RenderThread(store.Log(mode), store.Busy(mode))
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, s.state())
}

func (s *Server) handleMode(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	mode, err := conversation.ParseMode(req.Mode)
	if err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.tutor.SwitchMode(r.Context(), mode); err != nil {
		Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	JSON(w, http.StatusOK, s.state())
}

// conversationMode resolves the {mode} URL parameter to a mode with a log.
func conversationMode(w http.ResponseWriter, r *http.Request) (conversation.Mode, bool) {
	mode, err := conversation.ParseMode(chi.URLParam(r, "mode"))
	if err != nil {
		Error(w, http.StatusNotFound, err.Error())
		return "", false
	}
	if !mode.HasLog() {
		Error(w, http.StatusBadRequest, "simulation mode has no conversation")
		return "", false
	}
	return mode, true
}

func (s *Server) handleConversation(w http.ResponseWriter, r *http.Request) {
	mode, ok := conversationMode(w, r)
	if !ok {
		return
	}
	JSON(w, http.StatusOK, s.thread(mode))
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	mode, ok := conversationMode(w, r)
	if !ok {
		return
	}
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := s.tutor.SendTo(r.Context(), mode, req.Text, nil)
	s.writeTurn(w, mode, err)
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	mode, ok := conversationMode(w, r)
	if !ok {
		return
	}
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Action.IsModeSwitch() {
		if err := s.tutor.SwitchMode(r.Context(), conversation.ModeSimulation); err != nil {
			Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		JSON(w, http.StatusOK, s.state())
		return
	}

	err := s.tutor.SendTo(r.Context(), mode, req.Action.OutboundText(), nil)
	s.writeTurn(w, mode, err)
}

func (s *Server) handleModule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := lessons.FindModule(id); !ok {
		Error(w, http.StatusNotFound, "unknown module")
		return
	}
	err := s.tutor.SelectModule(r.Context(), id, nil)
	s.writeTurn(w, conversation.ModeLesson, err)
}

// writeTurn reports a finished send. A failed turn still returns the
// thread, which carries the apology message.
func (s *Server) writeTurn(w http.ResponseWriter, mode conversation.Mode, err error) {
	switch {
	case errors.Is(err, conversation.ErrBusy):
		Error(w, http.StatusConflict, err.Error())
	case err != nil:
		s.logger.Error("turn failed", "mode", mode, "error", err)
		JSON(w, http.StatusBadGateway, s.thread(mode))
	default:
		JSON(w, http.StatusOK, s.thread(mode))
	}
}
