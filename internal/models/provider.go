package models

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/adk/model"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/genai"
)

// Provider names accepted by New.
const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderXAI        = "xai"
)

// Options selects and authenticates a chat backend.
type Options struct {
	Provider         string
	Model            string
	GoogleAPIKey     string
	OpenRouterAPIKey string
	XAIAPIKey        string
}

// New builds the model.LLM for the configured provider.
func New(ctx context.Context, opts Options) (model.LLM, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Provider)) {
	case "", ProviderGemini:
		if strings.TrimSpace(opts.GoogleAPIKey) == "" {
			return nil, fmt.Errorf("API key is required")
		}
		llm, err := gemini.NewModel(ctx, opts.Model, &genai.ClientConfig{
			APIKey:  opts.GoogleAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini model: %w", err)
		}
		return llm, nil
	case ProviderOpenRouter:
		return NewOpenRouterModel(opts.Model, opts.OpenRouterAPIKey)
	case ProviderXAI:
		return NewGrokModel(opts.Model, opts.XAIAPIKey)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", opts.Provider)
	}
}
