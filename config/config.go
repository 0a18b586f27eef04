package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all exoplanet-explorer configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Batch      BatchConfig      `yaml:"batch"`
	Database   DatabaseConfig   `yaml:"database"`
	Assistant  AssistantConfig  `yaml:"assistant"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type ServerConfig struct {
	Port          string `yaml:"port"`
	MaxUploadSize int64  `yaml:"max_upload_size"` // bytes
	MaxRows       int    `yaml:"max_rows"`
}

// ClassifierConfig points at the external prediction service.
type ClassifierConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
	// Mock swaps the HTTP client for a local stand-in.
	Mock      bool   `yaml:"mock"`
	MockDelay string `yaml:"mock_delay"`
}

type BatchConfig struct {
	GroupSize int    `yaml:"group_size"`
	OutputDir string `yaml:"output_dir"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// AssistantConfig configures the optional generative-text summaries.
type AssistantConfig struct {
	Provider string `yaml:"provider"` // gemini, openai, or empty to disable
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
	Timeout  string `yaml:"timeout"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:          "8090",
			MaxUploadSize: 10 << 20,
			MaxRows:       10000,
		},
		Classifier: ClassifierConfig{
			BaseURL:   "http://localhost:8000",
			Timeout:   "30s",
			MockDelay: "2s",
		},
		Batch: BatchConfig{
			GroupSize: 5,
			OutputDir: ".",
		},
		Database: DatabaseConfig{
			Path: "exoplanets.db",
		},
		Assistant: AssistantConfig{
			Timeout: "30s",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML config file on top of the defaults and applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the config as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) applyEnvOverrides() {
	c.Server.Port = getEnv("EXO_PORT", c.Server.Port)
	c.Classifier.BaseURL = getEnv("PREDICT_API_URL", c.Classifier.BaseURL)
	c.Classifier.Timeout = getEnv("PREDICT_TIMEOUT", c.Classifier.Timeout)
	if v, err := strconv.ParseBool(os.Getenv("PREDICT_MOCK")); err == nil {
		c.Classifier.Mock = v
	}
	if v, err := strconv.Atoi(os.Getenv("BATCH_GROUP_SIZE")); err == nil {
		c.Batch.GroupSize = v
	}
	c.Database.Path = getEnv("DATABASE_PATH", c.Database.Path)
	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)

	c.Assistant.Provider = getEnv("ASSISTANT_PROVIDER", c.Assistant.Provider)
	if c.Assistant.APIKey == "" {
		switch strings.ToLower(c.Assistant.Provider) {
		case "gemini":
			c.Assistant.APIKey = os.Getenv("GEMINI_API_KEY")
		case "openai", "deepseek":
			c.Assistant.APIKey = os.Getenv("DEEPSEEK_API_KEY")
		}
	}
}

// Validate checks the values the rest of the program relies on.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	if c.Classifier.BaseURL == "" && !c.Classifier.Mock {
		return fmt.Errorf("classifier.base_url is required unless classifier.mock is set")
	}
	if c.Batch.GroupSize < 1 {
		return fmt.Errorf("batch.group_size must be positive, got %d", c.Batch.GroupSize)
	}
	for name, raw := range map[string]string{
		"classifier.timeout":    c.Classifier.Timeout,
		"classifier.mock_delay": c.Classifier.MockDelay,
		"assistant.timeout":     c.Assistant.Timeout,
	} {
		if raw == "" {
			continue
		}
		if _, err := time.ParseDuration(raw); err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, raw, err)
		}
	}
	switch strings.ToLower(c.Assistant.Provider) {
	case "", "gemini", "openai", "deepseek":
	default:
		return fmt.Errorf("unknown assistant.provider %q", c.Assistant.Provider)
	}
	return nil
}

// GetClassifierTimeout returns the prediction call timeout, 30s when unset.
func (c *Config) GetClassifierTimeout() time.Duration {
	return parseDuration(c.Classifier.Timeout, 30*time.Second)
}

func (c *Config) GetMockDelay() time.Duration {
	return parseDuration(c.Classifier.MockDelay, 0)
}

func (c *Config) GetAssistantTimeout() time.Duration {
	return parseDuration(c.Assistant.Timeout, 30*time.Second)
}

func parseDuration(raw string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return def
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
