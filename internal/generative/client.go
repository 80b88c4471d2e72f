package generative

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultModel is the chat model used when none is configured.
const DefaultModel = openai.GPT4oMini

var (
	// ErrEmptyPrompt is returned when the prompt is empty
	ErrEmptyPrompt = errors.New("prompt cannot be empty")
	// ErrNoCompletion is returned when the API returns no choices
	ErrNoCompletion = errors.New("no completion returned")
)

// CompletionAPI defines the interface for chat completion generation
type CompletionAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client wraps the OpenAI API behind the knowledge router's Generator
// contract.
type Client struct {
	api   CompletionAPI
	model string
}

type Config struct {
	APIKey string
	Model  string
}

// NewClient creates a new completion client using defaults.
func NewClient(apiKey string) *Client {
	return NewClientWithConfig(Config{APIKey: apiKey})
}

// NewClientWithConfig creates a new completion client with explicit
// configuration.
func NewClientWithConfig(cfg Config) *Client {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		api:   openai.NewClient(cfg.APIKey),
		model: model,
	}
}

// Complete sends the prompt to the chat completions API and returns
// the first choice's text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You answer questions for a club website. Be factual, brief and friendly.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   400,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrNoCompletion
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
