package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultLLMBaseURL is Groq's OpenAI-compatible endpoint.
	DefaultLLMBaseURL = "https://api.groq.com/openai/v1"
	// DefaultLLMModel is the model used when none is configured.
	DefaultLLMModel = "llama3-70b-8192"
)

// CompletionOptions tunes a single completion.
type CompletionOptions struct {
	Temperature float32
	MaxTokens   int
}

// Completer sends a single-message prompt to a language model and returns its reply.
type Completer interface {
	Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error)
}

// LLMClient is a Completer backed by an OpenAI-compatible chat completion API.
type LLMClient struct {
	client *openai.Client
	model  string
	logger *log.Logger
}

// NewLLMClient creates a client for the chat completion API at baseURL.
func NewLLMClient(apiKey, baseURL, model string, logger *log.Logger) (*LLMClient, error) {
	if apiKey == "" {
		return nil, errors.New("API key is required for the language model")
	}
	if baseURL == "" {
		baseURL = DefaultLLMBaseURL
	}
	if model == "" {
		model = DefaultLLMModel
	}
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL
	return &LLMClient{
		client: openai.NewClientWithConfig(config),
		model:  model,
		logger: logger,
	}, nil
}

func (c *LLMClient) Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error) {
	c.logger.Printf("Requesting completion from %s (%d prompt chars)...", c.model, len(prompt))
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("failed to create chat completion: model returned no choices")
	}
	c.logger.Printf("Completion received (%d tokens).", resp.Usage.TotalTokens)
	return resp.Choices[0].Message.Content, nil
}
