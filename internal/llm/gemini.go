package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiClient implementa LLMClient con google.golang.org/genai.
type GeminiClient struct {
	client   *genai.Client
	model    string
	jsonMode bool
	logger   *zap.Logger
}

// NewGeminiClient crea el cliente de Gemini; falla si no hay credencial.
func NewGeminiClient(ctx context.Context, apiKey, model string, jsonMode bool, logger *zap.Logger) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: gemini api key is empty", ErrUnauthorized)
	}
	return newGeminiClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}, model, jsonMode, logger)
}

func newGeminiClient(ctx context.Context, cc *genai.ClientConfig, model string, jsonMode bool, logger *zap.Logger) (*GeminiClient, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClient{
		client:   client,
		model:    model,
		jsonMode: jsonMode,
		logger:   logger,
	}, nil
}

func (c *GeminiClient) Generate(ctx context.Context, systemInstruction, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
	}
	if c.jsonMode {
		cfg.ResponseMIMEType = "application/json"
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		c.logger.Warn("gemini generate failed", zap.String("model", c.model), zap.Error(err))
		if isGeminiCredentialError(err) {
			return "", fmt.Errorf("%w: %s", ErrUnauthorized, err.Error())
		}
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}


// isGeminiCredentialError reconoce el rechazo de la API key. Gemini responde 400
// INVALID_ARGUMENT con razón API_KEY_INVALID para claves mal formadas.
func isGeminiCredentialError(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden {
			return true
		}
		for _, d := range apiErr.Details {
			if reason, _ := d["reason"].(string); reason == "API_KEY_INVALID" {
				return true
			}
		}
	}
	return isCredentialMessage(err.Error())
}
