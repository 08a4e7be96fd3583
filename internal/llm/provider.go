package llm

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"resume-analyzer/internal/config"
)

// UnavailableClient responde siempre con el error de construcción del cliente real.
// Permite arrancar el servicio sin credencial: las solicitudes fallan después.
type UnavailableClient struct {
	Err error
}

func (u UnavailableClient) Generate(ctx context.Context, systemInstruction, prompt string) (string, error) {
	return "", u.Err
}

// NewClient construye el cliente del proveedor configurado. Si falla, devuelve
// un UnavailableClient junto con el error para que el llamador lo registre.
func NewClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (LLMClient, error) {
	var (
		client LLMClient
		err    error
	)
	switch cfg.LLMProvider {
	case config.ProviderAnthropic:
		client, err = NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.LLMMaxTokens, logger)
	case config.ProviderOpenAI:
		if cfg.LLMAPIKey == "" {
			err = fmt.Errorf("%w: llm api key is empty", ErrUnauthorized)
			break
		}
		client = NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMJSONMode, http.DefaultClient, logger)
	case config.ProviderGemini, "":
		client, err = NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.LLMJSONMode, logger)
	default:
		err = fmt.Errorf("unknown llm provider %q", cfg.LLMProvider)
	}
	if err != nil {
		return UnavailableClient{Err: err}, err
	}
	return client, nil
}
