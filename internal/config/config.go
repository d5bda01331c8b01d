package config

import (
	"log"
	"path/filepath"

	"github.com/caarlos0/env/v6"
)

type LLMProvider string

const (
	ProviderOpenAI LLMProvider = "openai"
	ProviderYandex LLMProvider = "yandex"
)

type Config struct {
	// LLM settings
	LLMProvider      LLMProvider `env:"LLM_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey     string      `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string      `env:"OPENAI_BASE_URL"`
	OpenAIModel      string      `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	YandexOAuthToken string      `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string      `env:"YANDEX_FOLDER_ID"`

	// Shared data exchange with the host process
	DataDir string `env:"DATA_DIR" envDefault:"shared-data"`

	// Storage
	ExchangeLogPath string `env:"EXCHANGE_LOG_PATH"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	if cfg.ExchangeLogPath == "" {
		cfg.ExchangeLogPath = filepath.Join(cfg.DataDir, "logs", "exchanges.jsonl")
	}
	return cfg
}

// InputDir is where the host drops files referenced by load requests.
func (c *Config) InputDir() string { return filepath.Join(c.DataDir, "input") }

// OutputDir receives response records and generated chart images.
func (c *Config) OutputDir() string { return filepath.Join(c.DataDir, "output") }

// TempDir holds scratch files exchanged with the host.
func (c *Config) TempDir() string { return filepath.Join(c.DataDir, "temp") }
