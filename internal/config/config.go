// Package config loads scribe configuration from the user config file and
// the environment. The resolved Config is passed explicitly into the mapper;
// nothing in the core reads ambient process state.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variable names recognized as overrides.
const (
	EnvGoogleAPIKey = "GOOGLE_API_KEY"
	EnvGroqAPIKey   = "GROQ_API_KEY"
	EnvProvider     = "SCRIBE_PROVIDER"
)

// Keys stored with this placeholder value are treated as absent.
const placeholderKey = "deprecated"

// Config holds all scribe settings.
type Config struct {
	// Provider selection ("gemini" or "groq"); unknown values fall back
	// to gemini at client-construction time.
	Provider string `yaml:"provider,omitempty"`

	// API keys per provider.
	GoogleAPIKey string `yaml:"google_api_key,omitempty"`
	GroqAPIKey   string `yaml:"groq_api_key,omitempty"`

	// Optional model overrides.
	GeminiModel string `yaml:"gemini_model,omitempty"`
	GroqModel   string `yaml:"groq_model,omitempty"`

	// HTTP timeout for provider calls.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// DefaultPath returns the default user config location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".scribe", "config.yaml")
	}
	return filepath.Join(home, ".scribe", "config.yaml")
}

// Load reads the config file at path (DefaultPath when empty) and applies
// environment overrides. A missing file is not an error; env-only
// configuration is a supported mode.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Fine: fall through to env overrides.
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if v := os.Getenv(EnvGoogleAPIKey); v != "" {
		cfg.GoogleAPIKey = v
	}
	if v := os.Getenv(EnvGroqAPIKey); v != "" {
		cfg.GroqAPIKey = v
	}
	if v := os.Getenv(EnvProvider); v != "" {
		cfg.Provider = v
	}
	return cfg, nil
}

// Save writes the config back to path, creating parent directories.
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ActiveKey resolves the credential for a provider id. Placeholder values
// count as unset.
func (c *Config) ActiveKey(provider string) string {
	var key string
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "groq":
		key = c.GroqAPIKey
	default:
		key = c.GoogleAPIKey
	}
	key = strings.TrimSpace(key)
	if key == placeholderKey {
		return ""
	}
	return key
}
