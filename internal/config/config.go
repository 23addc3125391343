package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/futig/faq-backend/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":30080"`

	// External service configurations
	SourceConnectorCfg    SourceConnectorConfig    `envPrefix:"SOURCE_"`
	EmbeddingConnectorCfg EmbeddingConnectorConfig `envPrefix:"EMBEDDING_"`
	LLMConnectorCfg       LLMConnectorConfig       `envPrefix:"LLM_"`

	// Pipeline configuration
	ChatCfg ChatConfig `envPrefix:"CHAT_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

// SourceConnectorConfig configures the FAQ content API client.
type SourceConnectorConfig struct {
	HTTPClientConfig
	FaqsEndpoint string `env:"FAQS_ENDPOINT" envDefault:"/api/faqs"`
}

// EmbeddingConnectorConfig configures the embeddings service client.
type EmbeddingConnectorConfig struct {
	HTTPClientConfig
	EmbeddingsEndpoint string               `env:"EMBEDDINGS_ENDPOINT" envDefault:"/v1/embeddings"`
	Model              string               `env:"MODEL" envDefault:"text-embedding-ada-002"`
	Retry              pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// LLMConnectorConfig configures the chat-completion service client.
type LLMConnectorConfig struct {
	HTTPClientConfig
	CompletionsEndpoint string               `env:"COMPLETIONS_ENDPOINT" envDefault:"/v1/chat/completions"`
	Model               string               `env:"MODEL" envDefault:"gpt-3.5-turbo"`
	Temperature         float64              `env:"TEMPERATURE" envDefault:"0.7"`
	Retry               pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// ChatConfig holds the retrieval pipeline parameters.
type ChatConfig struct {
	TopK            int           `env:"TOP_K" envDefault:"4"`
	ChunkSize       int           `env:"CHUNK_SIZE" envDefault:"100"`
	ChunkOverlap    int           `env:"CHUNK_OVERLAP" envDefault:"20"`
	AssistantDomain string        `env:"ASSISTANT_DOMAIN" envDefault:"Strapi"`
	IndexCacheTTL   time.Duration `env:"INDEX_CACHE_TTL" envDefault:"0"`
}

// HTTPClientConfig holds per-upstream HTTP client settings.
type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"30s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"20s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	applyDefaults(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// applyDefaults fills upstream URLs that have well-known defaults. The FAQ
// source historically lives on a local Strapi instance.
func applyDefaults(cfg *Config) {
	if cfg.SourceConnectorCfg.Url == "" {
		cfg.SourceConnectorCfg.Url = "http://localhost:1337"
	}
	if cfg.EmbeddingConnectorCfg.Url == "" {
		cfg.EmbeddingConnectorCfg.Url = "https://api.openai.com"
	}
	if cfg.LLMConnectorCfg.Url == "" {
		cfg.LLMConnectorCfg.Url = "https://api.openai.com"
	}
	// The embedding service shares the model API credential unless it is
	// configured separately.
	if cfg.EmbeddingConnectorCfg.Token == "" {
		cfg.EmbeddingConnectorCfg.Token = cfg.LLMConnectorCfg.Token
	}
}

func validateConfig(cfg *Config) error {
	if cfg.ChatCfg.TopK < 1 || cfg.ChatCfg.TopK > 50 {
		return fmt.Errorf("CHAT_TOP_K must be between 1 and 50, got %d", cfg.ChatCfg.TopK)
	}

	if cfg.ChatCfg.ChunkSize < 1 {
		return fmt.Errorf("CHAT_CHUNK_SIZE must be positive, got %d", cfg.ChatCfg.ChunkSize)
	}

	if cfg.ChatCfg.ChunkOverlap < 0 || cfg.ChatCfg.ChunkOverlap >= cfg.ChatCfg.ChunkSize {
		return fmt.Errorf("CHAT_CHUNK_OVERLAP must be between 0 and CHAT_CHUNK_SIZE(%d), got %d",
			cfg.ChatCfg.ChunkSize, cfg.ChatCfg.ChunkOverlap)
	}

	if !cfg.EnableMocks && cfg.LLMConnectorCfg.Token == "" {
		return fmt.Errorf("LLM_TOKEN is required when mocks are disabled")
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
