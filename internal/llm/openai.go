package llm

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/notetutor/notetutor/store"
)

// OpenAIChat is a Completer backed by any OpenAI-compatible chat endpoint
// (OpenAI itself, OpenRouter, a local proxy).
type OpenAIChat struct {
	client *openai.LLM
}

// NewOpenAIChat creates a client against the given endpoint.
func NewOpenAIChat(apiKey, baseURL string) (*OpenAIChat, error) {
	client, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithBaseURL(baseURL),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create openai client")
	}
	return &OpenAIChat{client: client}, nil
}

func (c *OpenAIChat) Complete(ctx context.Context, req *ChatRequest) (string, error) {
	content := make([]llms.MessageContent, 0, len(req.Messages))
	for _, m := range req.Messages {
		content = append(content, llms.TextParts(messageType(m.Role), m.Content))
	}

	resp, err := c.client.GenerateContent(ctx, content,
		llms.WithModel(req.Model),
		llms.WithTemperature(req.Temperature),
		llms.WithMaxTokens(req.MaxTokens),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", errors.Wrap(err, "model request failed")
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Content, nil
}

func messageType(role store.Role) llms.ChatMessageType {
	switch role {
	case store.RoleSystem:
		return llms.ChatMessageTypeSystem
	case store.RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}
