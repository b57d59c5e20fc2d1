package llm

import "errors"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// openrouterModels maps the same friendly names the Gemini provider uses
// onto OpenRouter slugs, so GA4TUTOR_LESSON_MODEL=gemini-pro works with
// either provider.
var openrouterModels = map[string]string{
	"gemini-flash": "google/" + geminiModels["gemini-flash"],
	"gemini-pro":   "google/" + geminiModels["gemini-pro"],
	"claude-haiku": "anthropic/claude-haiku-4.5",
	"gpt-4o-mini":  "openai/gpt-4o-mini",
}

// OpenRouterProvider is the OpenAI adapter pointed at OpenRouter's
// OpenAI-compatible endpoint.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOpenRouterBaseURL
	}
	inner := newOpenAIProviderRaw(OpenAIConfig(cfg), openrouterModels)
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}
