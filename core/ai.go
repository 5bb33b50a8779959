package core

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// TextGenerator is the content-generator text contract the pipeline relies
// on: one prompt in, generated text out. Stages depend on this interface so
// tests can substitute deterministic fakes.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// OpenAIText implements TextGenerator against an OpenAI-compatible chat
// completion API.
//
// Thread Safety: safe for concurrent use; the underlying client handles
// connection pooling.
type OpenAIText struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAIText creates a text generator from the run configuration.
// TextLLMURL overrides BaseLLMURL when set, so text and image generation can
// target different endpoints.
func NewOpenAIText(cfg *Config) *OpenAIText {
	clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)

	if cfg.TextLLMURL != "" {
		clientConfig.BaseURL = cfg.TextLLMURL
	} else if cfg.BaseLLMURL != "" {
		clientConfig.BaseURL = cfg.BaseLLMURL
	}
	clientConfig.HTTPClient = GetHTTPClient(cfg, cfg.AITimeout)

	return &OpenAIText{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     cfg.TextModel,
		maxTokens: int(cfg.DescriptionTokens),
	}
}

// WithMaxTokens returns a copy of the generator with a different completion
// token limit. Used by the outline generator, which needs more room than a
// single page description.
func (t *OpenAIText) WithMaxTokens(maxTokens int) *OpenAIText {
	copied := *t
	copied.maxTokens = maxTokens
	return &copied
}

// GenerateText sends a single-user-message chat completion and returns the
// reply text.
func (t *OpenAIText) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := t.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: t.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens: t.maxTokens,
		},
	)

	if err != nil {
		return "", fmt.Errorf("text generation failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned from generator")
	}

	return resp.Choices[0].Message.Content, nil
}

// Model returns the configured chat model name.
func (t *OpenAIText) Model() string {
	return t.model
}

var _ TextGenerator = (*OpenAIText)(nil)
