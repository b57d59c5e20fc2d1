package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/abhisek/ga4tutor/internal/app"
	"github.com/abhisek/ga4tutor/internal/chat"
	"github.com/abhisek/ga4tutor/internal/conversation"
	"github.com/abhisek/ga4tutor/internal/llm"
	"github.com/abhisek/ga4tutor/internal/store"
	"github.com/spf13/cobra"
)

// deps is everything a front end needs to drive the tutor.
type deps struct {
	store *store.Store
	tutor *conversation.Tutor
}

func (d *deps) Close() error {
	d.tutor.Wait()
	return d.store.Close()
}

// buildTutor resolves LLM configuration, opens the event store and wires
// the session registry and tutor controller. A missing credential is not
// fatal: the sessions fail to initialize and the tutor reports it in the
// lesson log.
func buildTutor(cmd *cobra.Command, logger *slog.Logger) (*deps, error) {
	cfg := resolveLLMConfig(logger)

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	registry := chat.NewRegistry(
		chat.NewProviderFactory(cfg, st.EventRepo()),
		chat.DefaultConfigs(cfg),
	)
	registry.PrimeTimeout = cfg.Timeout

	logger.Info("tutor ready", "provider", cfg.Provider, "db", dbPath)
	return &deps{
		store: st,
		tutor: conversation.NewTutor(registry, logger),
	}, nil
}

// resolveLLMConfig returns the usable provider configuration, or the
// GA4TUTOR_ environment as-is when nothing validates.
func resolveLLMConfig(logger *slog.Logger) llm.Config {
	cfg, err := llm.ResolveConfig()
	if err != nil {
		logger.Warn("LLM provider not configured", "error", err)
		return llm.ConfigFromEnv()
	}
	return cfg
}

// runApp builds dependencies and launches the TUI. The terminal is owned
// by the UI, so logs go to a file beside the database.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger, closeLog, err := fileLogger(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	d, err := buildTutor(cmd, logger)
	if err != nil {
		return err
	}
	defer d.Close()

	return app.Run(ctx, app.Options{Tutor: d.tutor})
}

func fileLogger(cmd *cobra.Command) (*slog.Logger, func(), error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	path := filepath.Join(filepath.Dir(dbPath), "ga4tutor.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelInfo}))
	return logger, func() { f.Close() }, nil
}
