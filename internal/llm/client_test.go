package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"resume-analyzer/internal/config"
)

func TestHTTPClientGenerateSendsSystemAndUserMessages(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", r.Header.Get("Authorization"))
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"overallScore\":80}"}}]}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL+"/", "test-key", "gpt-test", true, srv.Client(), zap.NewNop())
	out, err := c.Generate(context.Background(), "system text", "prompt text")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out != `{"overallScore":80}` {
		t.Fatalf("unexpected output %q", out)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "prompt text" {
		t.Fatalf("unexpected messages %+v", got.Messages)
	}
	if got.ResponseFormat == nil || got.ResponseFormat.Type != "json_object" {
		t.Fatalf("expected json response format")
	}
}

func TestHTTPClientUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided"}}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "bad", "gpt-test", false, srv.Client(), nil)
	_, err := c.Generate(context.Background(), "s", "p")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if !strings.Contains(err.Error(), "Incorrect API key provided") {
		t.Fatalf("expected upstream message in error, got %v", err)
	}
}

func TestHTTPClientServerErrorKeepsUpstreamMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"Rate limit reached"}}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "k", "m", false, srv.Client(), nil)
	_, err := c.Generate(context.Background(), "s", "p")
	if err == nil || errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected non-credential error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Rate limit reached") || !strings.Contains(err.Error(), "status=429") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestHTTPClientEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "k", "m", false, srv.Client(), nil)
	if _, err := c.Generate(context.Background(), "s", "p"); !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestNewClientWithoutCredentialReturnsUnavailable(t *testing.T) {
	for _, provider := range []string{config.ProviderGemini, config.ProviderAnthropic, config.ProviderOpenAI} {
		t.Run(provider, func(t *testing.T) {
			cfg := &config.Config{LLMProvider: provider}
			client, err := NewClient(context.Background(), cfg, zap.NewNop())
			if !errors.Is(err, ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
			if _, genErr := client.Generate(context.Background(), "s", "p"); !errors.Is(genErr, ErrUnauthorized) {
				t.Fatalf("expected unavailable client to fail with ErrUnauthorized, got %v", genErr)
			}
		})
	}
}

func TestNewClientUnknownProvider(t *testing.T) {
	_, err := NewClient(context.Background(), &config.Config{LLMProvider: "cohere"}, zap.NewNop())
	if err == nil || !strings.Contains(err.Error(), "unknown llm provider") {
		t.Fatalf("expected unknown provider error, got %v", err)
	}
}

func TestIsCredentialMessage(t *testing.T) {
	if !isCredentialMessage("Error 403, Message: Method doesn't allow unregistered callers") {
		t.Fatalf("expected unregistered callers to be a credential error")
	}
	if !isCredentialMessage("Error 400, Message: API key not valid. Please pass a valid API key., Status: INVALID_ARGUMENT") {
		t.Fatalf("expected invalid key to be a credential error")
	}
	if isCredentialMessage("Error 503, Message: The model is overloaded") {
		t.Fatalf("did not expect overload to be a credential error")
	}
}
