package llm

import (
	"context"
	"iter"
)

// Provider is the core abstraction for LLM interaction.
// Consumers either ask for a complete reply with Generate or pull an
// incremental reply fragment by fragment with Stream.
type Provider interface {
	// Generate sends a prompt to the LLM and waits for the complete reply.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Stream sends a prompt to the LLM and returns a lazy, single-consumer
	// sequence of text fragments. Concatenating every fragment in order
	// yields the full reply. A failure is delivered as the final element
	// of the sequence (empty text, non-nil error); nothing follows it.
	Stream(ctx context.Context, req Request) iter.Seq2[string, error]

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and constraints.
	System string

	// Messages is the conversation history, oldest first. The last entry
	// is normally the user message being answered.
	Messages []Message

	// MaxTokens is the maximum number of tokens in the response.
	// Zero lets the provider pick its own default.
	MaxTokens int

	// Temperature controls randomness. Zero leaves the provider default.
	Temperature float64

	// TopP is the nucleus sampling threshold. Zero leaves the provider default.
	TopP float64

	// TopK limits sampling to the K most likely tokens. Zero leaves the
	// provider default; not every provider supports it.
	TopK int
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Response holds the LLM's output.
type Response struct {
	// Text is the generated reply, exactly as the model produced it.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Collect drains a fragment sequence and returns the concatenated text.
// It stops at the first error and returns the text received so far with it.
func Collect(seq iter.Seq2[string, error]) (string, error) {
	var text string
	for fragment, err := range seq {
		if err != nil {
			return text, err
		}
		text += fragment
	}
	return text, nil
}
