package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"
)

// AnthropicClient implementa LLMClient con la API de mensajes de Anthropic.
type AnthropicClient struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	logger    *zap.Logger
}

// NewAnthropicClient desactiva los reintentos del SDK; opts se agregan después
// de la credencial.
func NewAnthropicClient(apiKey, model string, maxTokens int, logger *zap.Logger, opts ...option.RequestOption) (*AnthropicClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: anthropic api key is empty", ErrUnauthorized)
	}
	if maxTokens <= 0 {
		maxTokens = 8192
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnthropicClient{
		client:    anthropic.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}, opts...)...),
		model:     model,
		maxTokens: int64(maxTokens),
		logger:    logger,
	}, nil
}

func (c *AnthropicClient) Generate(ctx context.Context, systemInstruction, prompt string) (string, error) {
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		System:    []anthropic.TextBlockParam{{Text: systemInstruction}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		c.logger.Warn("anthropic generate failed", zap.String("model", c.model), zap.Error(err))
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) &&
			(apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden) {
			return "", fmt.Errorf("%w: %s", ErrUnauthorized, err.Error())
		}
		return "", fmt.Errorf("anthropic generate: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}
