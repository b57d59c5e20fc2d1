// Package server exposes the tutor over HTTP and websockets so a browser
// front end can drive the same conversations as the terminal UI.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/abhisek/ga4tutor/internal/conversation"
)

// Server serves one tutor.
type Server struct {
	tutor  *conversation.Tutor
	logger *slog.Logger
}

// New creates a server over t. A nil logger discards output.
func New(t *conversation.Tutor, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{tutor: t, logger: logger}
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Put("/mode", s.handleMode)
		r.Post("/modules/{id}", s.handleModule)

		r.Route("/conversations/{mode}", func(r chi.Router) {
			r.Get("/", s.handleConversation)
			r.Post("/messages", s.handleMessage)
			r.Post("/actions", s.handleAction)
		})
	})

	r.Get("/ws/conversations/{mode}", s.handleStream)

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:        addr,
		Handler:     s.Routes(),
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.tutor.Wait()
	return nil
}
