// Package config provides application configuration with multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (prefix ROADSAFE_, plus GEMINI_API_KEY/GOOGLE_API_KEY)
//  2. Config file (./config.yaml or ~/.roadsafe/config.yaml)
//  3. Default values
//
// A local .env file is loaded at startup when present, so the Gemini API key
// can live next to the repo during development.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	// ErrMissingAPIKey indicates no Gemini API key was found in the environment.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrInvalidModelName indicates the model name is empty or malformed.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrInvalidEmbedderModel indicates the embedder model is empty.
	ErrInvalidEmbedderModel = errors.New("invalid embedder model")

	// ErrInvalidTopK indicates the retrieval depth is out of range.
	ErrInvalidTopK = errors.New("invalid top-k")

	// ErrInvalidDataPath indicates the knowledge source path is empty.
	ErrInvalidDataPath = errors.New("invalid data path")
)

// Defaults mirror the models the knowledge base was tuned against.
const (
	// DefaultModelName is the provider-qualified Gemini model for grading and generation.
	DefaultModelName = "googleai/gemini-2.5-flash"

	// DefaultEmbedderModel embeds intervention records and queries.
	DefaultEmbedderModel = "text-embedding-004"

	// DefaultTopK is the number of intervention records retrieved per question.
	DefaultTopK = 4

	// MaxTopK bounds retrieval depth; beyond this the grader context becomes noise.
	MaxTopK = 20

	// DefaultDataPath is the tabular knowledge source loaded at startup.
	DefaultDataPath = "data/interventions.csv"

	// DefaultAddr is the HTTP listen address for serve mode.
	DefaultAddr = "localhost:5000"
)

// Config stores application configuration.
type Config struct {
	// GeminiAPIKey authenticates the embedding and generation calls.
	// Read from GEMINI_API_KEY or GOOGLE_API_KEY; never written to config files.
	GeminiAPIKey string `mapstructure:"-"`

	ModelName     string `mapstructure:"model_name"`
	EmbedderModel string `mapstructure:"embedder_model"`

	// Knowledge base
	DataPath string `mapstructure:"data_path"`
	TopK     int    `mapstructure:"top_k"`

	// HTTP server
	Addr string `mapstructure:"addr"`

	// Logging
	LogLevel string `mapstructure:"log_level"` // debug, info, warn, error
	LogJSON  bool   `mapstructure:"log_json"`
}

// Load reads configuration from file, environment, and defaults.
// The returned config is not yet validated; call Validate before serving.
func Load() (*Config, error) {
	// Best-effort .env load; absence is the normal case in production.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".roadsafe"))
	}

	v.SetEnvPrefix("ROADSAFE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("model_name", DefaultModelName)
	v.SetDefault("embedder_model", DefaultEmbedderModel)
	v.SetDefault("data_path", DefaultDataPath)
	v.SetDefault("top_k", DefaultTopK)
	v.SetDefault("addr", DefaultAddr)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// No config file is fine; env and defaults apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.GeminiAPIKey = apiKeyFromEnv()

	return &cfg, nil
}

// apiKeyFromEnv resolves the Gemini API key.
// GEMINI_API_KEY wins over GOOGLE_API_KEY, matching the googlegenai plugin.
func apiKeyFromEnv() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return os.Getenv("GOOGLE_API_KEY")
}

// Validate checks that the configuration can support a running service.
// A missing API key is startup-fatal: without it neither the index nor the
// pipeline can be built.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("configuration is nil")
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("%w: set GEMINI_API_KEY or GOOGLE_API_KEY", ErrMissingAPIKey)
	}
	if strings.TrimSpace(c.ModelName) == "" {
		return ErrInvalidModelName
	}
	if strings.TrimSpace(c.EmbedderModel) == "" {
		return ErrInvalidEmbedderModel
	}
	if c.TopK < 1 || c.TopK > MaxTopK {
		return fmt.Errorf("%w: %d (must be 1-%d)", ErrInvalidTopK, c.TopK, MaxTopK)
	}
	if strings.TrimSpace(c.DataPath) == "" {
		return ErrInvalidDataPath
	}
	return nil
}
