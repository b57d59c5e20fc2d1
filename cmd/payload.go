package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/abhisek/ga4tutor/internal/lessons"
	"github.com/abhisek/ga4tutor/internal/present"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/cobra"
)

var payloadCmd = &cobra.Command{
	Use:   "payload",
	Short: "Check saved model replies against the tutoring screen format",
}

var payloadLintCmd = &cobra.Command{
	Use:   "lint <file|->",
	Short: "Validate a model reply against the screen schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readPayload(args[0])
		if err != nil {
			return err
		}

		err = lessons.Lint(text)
		var verr *jsonschema.ValidationError
		switch {
		case err == nil:
			fmt.Println("ok")
			return nil
		case errors.Is(err, lessons.ErrNoPayload):
			return fmt.Errorf("no screen payload found: %w", err)
		case errors.As(err, &verr):
			fmt.Fprintln(os.Stderr, verr)
			return errors.New("payload does not match the screen schema")
		default:
			return err
		}
	},
}

var payloadRenderCmd = &cobra.Command{
	Use:   "render <file|->",
	Short: "Print the card a model reply renders to",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readPayload(args[0])
		if err != nil {
			return err
		}

		screen, err := lessons.Decode(text)
		if err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(present.NewCard(screen))
	},
}

// readPayload reads path, or stdin for "-".
func readPayload(path string) (string, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(os.Stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read payload: %w", err)
	}
	return string(b), nil
}

func init() {
	payloadCmd.AddCommand(payloadLintCmd)
	payloadCmd.AddCommand(payloadRenderCmd)
}
