package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// LLMClient define la interfaz para generar respuestas con un LLM.
// Es una llamada única y bloqueante: sin reintentos ni streaming.
type LLMClient interface {
	Generate(ctx context.Context, systemInstruction, prompt string) (string, error)
}

var (
	// ErrUnauthorized indica que el proveedor rechazó la credencial.
	ErrUnauthorized = errors.New("llm credential rejected")
	// ErrEmptyResponse indica que el proveedor no devolvió texto.
	ErrEmptyResponse = errors.New("llm empty response")
)

// HTTPClient implementa LLMClient usando la API de chat completions compatible con OpenAI.
type HTTPClient struct {
	baseURL  string
	apiKey   string
	model    string
	jsonMode bool
	client   *http.Client
	logger   *zap.Logger
}

// NewHTTPClient construye un cliente HTTP apuntando a la API de chat completions.
// Sin timeout propio: rige el del transporte y el contexto del llamador.
func NewHTTPClient(baseURL, apiKey, model string, jsonMode bool, httpClient *http.Client, logger *zap.Logger) *HTTPClient {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		model:    model,
		jsonMode: jsonMode,
		client:   httpClient,
		logger:   logger,
	}
}

func (c *HTTPClient) Generate(ctx context.Context, systemInstruction, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: prompt},
		},
	}
	if c.jsonMode {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		c.logger.Warn("llm error status", zap.Int("status", resp.StatusCode), zap.String("body", truncate(string(respBody), 512)))
		msg := fmt.Sprintf("llm http error: status=%d", resp.StatusCode)
		var cr chatResponse
		if json.Unmarshal(respBody, &cr) == nil && cr.Error != nil && cr.Error.Message != "" {
			msg += ": " + cr.Error.Message
		}
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return "", fmt.Errorf("%w: %s", ErrUnauthorized, msg)
		}
		return "", errors.New(msg)
	}

	var cr chatResponse
	if err := json.Unmarshal(respBody, &cr); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if cr.Error != nil {
		return "", fmt.Errorf("llm api error: %s", cr.Error.Message)
	}

	if len(cr.Choices) == 0 || cr.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}

	return cr.Choices[0].Message.Content, nil
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// isCredentialMessage detecta rechazos de credencial en mensajes de error del proveedor.
func isCredentialMessage(msg string) bool {
	lower := strings.ToLower(msg)
	for _, marker := range []string{
		"403 forbidden",
		"unregistered callers",
		"api key not valid",
		"api_key_invalid",
		"permission_denied",
		"invalid x-api-key",
		"authentication_error",
		"error 401",
		"error 403",
	} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
