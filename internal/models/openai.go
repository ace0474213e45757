// Package models provides model.LLM adapters for the chat backends.
package models

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"runtime"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

const (
	openRouterBaseURL = "https://openrouter.ai/api/v1"
	xaiBaseURL        = "https://api.x.ai/v1"
)

// openaiModel wraps an OpenAI-compatible chat completions client.
type openaiModel struct {
	client    *openai.Client
	name      string
	userAgent string
}

// NewOpenAIModel creates a model.LLM for an OpenAI-compatible endpoint.
// An empty baseURL targets api.openai.com.
func NewOpenAIModel(modelName, apiKey, baseURL string) (model.LLM, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if modelName == "" {
		return nil, fmt.Errorf("model name cannot be empty")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)

	return &openaiModel{
		name:      modelName,
		client:    &client,
		userAgent: fmt.Sprintf("zetazen/1.0.0 go/%s", strings.TrimPrefix(runtime.Version(), "go")),
	}, nil
}

// NewOpenRouterModel targets OpenRouter.
func NewOpenRouterModel(modelName, apiKey string) (model.LLM, error) {
	return NewOpenAIModel(modelName, apiKey, openRouterBaseURL)
}

// NewGrokModel targets x.ai.
func NewGrokModel(modelName, apiKey string) (model.LLM, error) {
	return NewOpenAIModel(modelName, apiKey, xaiBaseURL)
}

func (m *openaiModel) Name() string {
	return m.name
}

// GenerateContent issues one completion. Streaming is not supported; a single
// complete response is yielded either way.
func (m *openaiModel) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	return func(yield func(*model.LLMResponse, error) bool) {
		resp, err := m.generate(ctx, req)
		yield(resp, err)
	}
}

func (m *openaiModel) generate(ctx context.Context, req *model.LLMRequest) (*model.LLMResponse, error) {
	params := buildParams(req, m.name)

	resp, err := m.client.Chat.Completions.New(ctx, params, option.WithHeader("User-Agent", m.userAgent))
	if err != nil {
		slog.Error("failed to call llm API", "model", m.name, "error", err.Error())
		return nil, fmt.Errorf("failed to call chat completions: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return &model.LLMResponse{}, nil
	}

	text := resp.Choices[0].Message.Content
	content := &genai.Content{Role: string(genai.RoleModel)}
	if text != "" {
		content.Parts = append(content.Parts, &genai.Part{Text: text})
	}
	return &model.LLMResponse{Content: content}, nil
}

func buildParams(req *model.LLMRequest, name string) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model: req.Model,
	}
	if req.Model == "" {
		params.Model = name
	}

	var messages []openai.ChatCompletionMessageParamUnion
	if req.Config != nil {
		if system := ContentText(req.Config.SystemInstruction); system != "" {
			messages = append(messages, openai.SystemMessage(system))
		}
		if req.Config.Temperature != nil {
			params.Temperature = openai.Float(float64(*req.Config.Temperature))
		}
		if req.Config.MaxOutputTokens > 0 {
			params.MaxTokens = openai.Int(int64(req.Config.MaxOutputTokens))
		}
	}
	for _, content := range req.Contents {
		text := ContentText(content)
		if content == nil || text == "" {
			continue
		}
		switch content.Role {
		case string(genai.RoleModel), "assistant":
			messages = append(messages, openai.AssistantMessage(text))
		case "system":
			messages = append(messages, openai.SystemMessage(text))
		default:
			messages = append(messages, openai.UserMessage(text))
		}
	}
	params.Messages = messages
	return params
}
