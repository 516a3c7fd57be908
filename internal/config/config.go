package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	pkgRetry "github.com/studyassist/rag-backend/internal/pkg/retry"
)

// Vector store backends
const (
	VectorBackendMemory   = "memory"
	VectorBackendPostgres = "postgres"
)

// Embedding / LLM providers
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8000"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Pipeline configuration
	ChunkSize     int `env:"CHUNK_SIZE" envDefault:"900"`
	ChunkOverlap  int `env:"CHUNK_OVERLAP" envDefault:"150"`
	RetrievalTopK int `env:"RETRIEVAL_TOP_K" envDefault:"4"`

	// External service configurations
	EmbeddingCfg EmbeddingConfig `envPrefix:"EMBEDDING_"`
	LLMCfg       LLMConfig       `envPrefix:"LLM_"`
	OllamaCfg    OllamaConfig    `envPrefix:"OLLAMA_"`
	OpenAICfg    OpenAIConfig    `envPrefix:"OPENAI_"`

	// Vector store configuration
	VectorStoreCfg VectorStoreConfig `envPrefix:"VECTOR_STORE_"`

	// Session store configuration
	SessionCfg SessionConfig `envPrefix:"SESSION_"`

	// File upload configuration
	FileUploadCfg FileUploadConfig `envPrefix:"FILE_UPLOAD_"`

	// UniDoc metered license key; without it DOCX parsing and export
	// are unavailable.
	UnidocLicenseAPIKey string `env:"UNIDOC_LICENSE_API_KEY"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

// EmbeddingConfig selects and tunes the embedding provider
type EmbeddingConfig struct {
	Provider  string               `env:"PROVIDER" envDefault:"ollama"`
	Model     string               `env:"MODEL" envDefault:"nomic-embed-text"`
	Dimension int                  `env:"DIMENSION" envDefault:"0"` // 0 = accept whatever the model returns
	Retry     pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// LLMConfig selects and tunes the chat completion provider
type LLMConfig struct {
	Provider string               `env:"PROVIDER" envDefault:"ollama"`
	Model    string               `env:"MODEL" envDefault:"mistral"`
	Retry    pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// OllamaConfig holds the shared Ollama HTTP client configuration
type OllamaConfig struct {
	HTTPClientConfig
}

// OpenAIConfig holds OpenAI-compatible API credentials
type OpenAIConfig struct {
	APIKey  string `env:"API_KEY"`
	BaseURL string `env:"BASE_URL"`
}

// VectorStoreConfig selects the similarity-search backend
type VectorStoreConfig struct {
	Backend             string        `env:"BACKEND" envDefault:"memory"`
	DatabaseURL         string        `env:"DATABASE_URL"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`
	MigrationsPath      string        `env:"MIGRATIONS_PATH" envDefault:"file://internal/vectorstore/migrations"`
}

// SessionConfig holds session store lifetime settings. TTL 0 keeps
// sessions for the process lifetime.
type SessionConfig struct {
	TTL             time.Duration `env:"TTL" envDefault:"0"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"10m"`
}

// HTTPClientConfig tunes an outbound HTTP client
type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"120s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"120s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL" envDefault:"http://localhost:11434"`
}

// FileUploadConfig holds file upload limits
type FileUploadConfig struct {
	MaxFileSize   int64 `env:"MAX_FILE_SIZE" envDefault:"5242880"`    // 5 MiB
	MaxTotalSize  int64 `env:"MAX_TOTAL_SIZE" envDefault:"26214400"`  // 25 MiB
	MaxFileCount  int   `env:"MAX_FILE_COUNT" envDefault:"64"`        // Max 64 files
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"33554432"` // 32 MiB multipart memory cap
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

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errs []string

	if cfg.ChunkSize < 1 {
		errs = append(errs, fmt.Sprintf("CHUNK_SIZE must be positive, got %d", cfg.ChunkSize))
	}

	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		errs = append(errs, fmt.Sprintf("CHUNK_OVERLAP must be between 0 and CHUNK_SIZE(%d), got %d", cfg.ChunkSize, cfg.ChunkOverlap))
	}

	if cfg.RetrievalTopK < 1 {
		errs = append(errs, fmt.Sprintf("RETRIEVAL_TOP_K must be positive, got %d", cfg.RetrievalTopK))
	}

	switch cfg.VectorStoreCfg.Backend {
	case VectorBackendMemory:
	case VectorBackendPostgres:
		if cfg.VectorStoreCfg.DatabaseURL == "" {
			errs = append(errs, "VECTOR_STORE_DATABASE_URL is required for the postgres backend")
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown vector store backend: %s", cfg.VectorStoreCfg.Backend))
	}

	if !cfg.EnableMocks {
		switch cfg.EmbeddingCfg.Provider {
		case ProviderOllama:
		case ProviderOpenAI:
			if cfg.OpenAICfg.APIKey == "" {
				errs = append(errs, "OPENAI_API_KEY is required for the openai embedding provider")
			}
		default:
			errs = append(errs, fmt.Sprintf("unknown embedding provider: %s", cfg.EmbeddingCfg.Provider))
		}

		switch cfg.LLMCfg.Provider {
		case ProviderOllama:
		case ProviderOpenAI:
			if cfg.OpenAICfg.APIKey == "" {
				errs = append(errs, "OPENAI_API_KEY is required for the openai llm provider")
			}
		default:
			errs = append(errs, fmt.Sprintf("unknown llm provider: %s", cfg.LLMCfg.Provider))
		}
	}

	if cfg.VectorStoreCfg.DBMinConns < 0 || cfg.VectorStoreCfg.DBMinConns > cfg.VectorStoreCfg.DBMaxConns {
		errs = append(errs, fmt.Sprintf("VECTOR_STORE_DB_MIN_CONNS must be between 0 and VECTOR_STORE_DB_MAX_CONNS(%d), got %d",
			cfg.VectorStoreCfg.DBMaxConns, cfg.VectorStoreCfg.DBMinConns))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errs, "\n  - "))
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
