package rag

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "meta-llama/llama-4-scout-17b-16e-instruct"
	temperature    = 0.1
)

// Completer sends one user prompt to a chat model and returns its reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ChatCompleter talks to any OpenAI-compatible endpoint (Groq by default).
type ChatCompleter struct {
	client *openai.Client
	model  string
}

func NewChatCompleter(apiKey, baseURL, model string) *ChatCompleter {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	cfg.BaseURL = baseURL
	if model == "" {
		model = DefaultModel
	}
	return &ChatCompleter{client: openai.NewClientWithConfig(cfg), model: model}
}

func (c *ChatCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	res, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(res.Choices) == 0 {
		return "", errors.New("empty completion")
	}
	return res.Choices[0].Message.Content, nil
}
