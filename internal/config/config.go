package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Proveedores soportados para el cliente de modelo.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort       string `env:"HTTP_PORT" envDefault:"8080"`
	LogDevelopment bool   `env:"LOG_DEVELOPMENT" envDefault:"false"`

	LLMProvider     string `env:"LLM_PROVIDER" envDefault:"gemini"`
	GeminiAPIKey    string `env:"GEMINI_API_KEY"`
	GeminiModel     string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	AnthropicModel  string `env:"ANTHROPIC_MODEL" envDefault:"claude-sonnet-4-20250514"`
	LLMAPIKey       string `env:"LLM_API_KEY"`
	LLMBaseURL      string `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	LLMModel        string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	LLMJSONMode     bool   `env:"LLM_JSON_MODE" envDefault:"true"`
	LLMMaxTokens    int    `env:"LLM_MAX_TOKENS" envDefault:"8192"`

	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`

	DatabaseURL string `env:"DATABASE_URL"`

	RedisAddr         string        `env:"REDIS_ADDR"`
	RedisPassword     string        `env:"REDIS_PASSWORD"`
	RedisDB           int           `env:"REDIS_DB" envDefault:"0"`
	AnalyzeRateLimit  int           `env:"ANALYZE_RATE_LIMIT" envDefault:"20"`
	AnalyzeRateWindow time.Duration `env:"ANALYZE_RATE_WINDOW" envDefault:"1h"`

	NATSURL     string `env:"NATS_URL"`
	NATSSubject string `env:"NATS_SUBJECT" envDefault:"resume.analysis.completed"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	cfg.LLMProvider = strings.ToLower(strings.TrimSpace(cfg.LLMProvider))
	return &cfg, nil
}

// APIKey devuelve la credencial del proveedor activo.
func (c *Config) APIKey() string {
	switch c.LLMProvider {
	case ProviderAnthropic:
		return c.AnthropicAPIKey
	case ProviderOpenAI:
		return c.LLMAPIKey
	default:
		return c.GeminiAPIKey
	}
}

// Model devuelve el nombre de modelo del proveedor activo.
func (c *Config) Model() string {
	switch c.LLMProvider {
	case ProviderAnthropic:
		return c.AnthropicModel
	case ProviderOpenAI:
		return c.LLMModel
	default:
		return c.GeminiModel
	}
}

// KeyPrefix devuelve los primeros caracteres de la credencial para logs.
func (c *Config) KeyPrefix() string {
	key := c.APIKey()
	if len(key) <= 5 {
		return key
	}
	return key[:5]
}
