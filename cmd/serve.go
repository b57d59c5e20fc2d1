package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/abhisek/ga4tutor/internal/server"
	"github.com/spf13/cobra"
)

const defaultAddr = ":8080"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tutor over HTTP and websockets",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
		slog.SetDefault(logger)

		d, err := buildTutor(cmd, logger)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := d.Close(); closeErr != nil {
				logger.Error("failed to close store", "error", closeErr)
			}
		}()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// Lesson sends get 409 until the greeting is in; a failure lands
		// in the lesson log as a connection warning.
		if err := d.tutor.StartBootstrap(ctx); err != nil {
			return err
		}

		return server.New(d.tutor, logger).ListenAndServe(ctx, resolveAddr(cmd))
	},
}

// resolveAddr returns --addr, then GA4TUTOR_ADDR, then :8080.
func resolveAddr(cmd *cobra.Command) string {
	if a, _ := cmd.Flags().GetString("addr"); a != "" {
		return a
	}
	if a := os.Getenv("GA4TUTOR_ADDR"); a != "" {
		return a
	}
	return defaultAddr
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides GA4TUTOR_ADDR, default :8080)")
}
