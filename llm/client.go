// Package llm wraps the optional OpenAI-compatible generative provider
// used by the classifier and insight cascades. When no API key is
// configured the provider tier is skipped entirely.
package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sirupsen/logrus"
)

// Client is a thin chat-completion wrapper around the provider API.
type Client struct {
	client *openai.Client
	model  string
	logger *logrus.Logger
}

// NewClient builds a provider client, or returns nil when apiKey is
// empty. Callers treat a nil client as "tier unavailable".
func NewClient(baseURL, apiKey, model string, logger *logrus.Logger) *Client {
	if apiKey == "" {
		logger.Info("[llm] no API key configured, generative tier disabled")
		return nil
	}

	options := []option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	}

	client := openai.NewClient(options...)
	return &Client{client: &client, model: model, logger: logger}
}

// Chat sends one instruction/data pair and returns the raw completion
// text. Any transport or API failure is returned to the caller, which
// is expected to fall through to the next cascade tier.
func (c *Client) Chat(ctx context.Context, instructions, data string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(instructions),
			openai.UserMessage(data),
		},
		Model: c.model,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("provider returned no content choices")
	}

	return resp.Choices[0].Message.Content, nil
}
