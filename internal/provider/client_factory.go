package provider

import (
	"fmt"
	"strings"

	"scribe/internal/config"
)

// Resolve maps a caller-supplied provider id to a known Provider. Unknown
// or empty ids select Gemini, the high-capacity default.
func Resolve(id string) Provider {
	if strings.EqualFold(strings.TrimSpace(id), string(ProviderGroq)) {
		return ProviderGroq
	}
	return ProviderGemini
}

// NewClient builds the client for a provider id from the given config. A
// missing credential is a configuration error raised here, before any
// network call.
func NewClient(cfg *config.Config, id string) (Client, error) {
	p := Resolve(id)
	key := cfg.ActiveKey(string(p))
	if key == "" {
		return nil, fmt.Errorf("%s: %w", p, ErrNotConfigured)
	}

	switch p {
	case ProviderGroq:
		groqCfg := DefaultGroqConfig(key)
		if cfg.GroqModel != "" {
			groqCfg.Model = cfg.GroqModel
		}
		if cfg.Timeout > 0 {
			groqCfg.Timeout = cfg.Timeout
		}
		return NewGroqClientWithConfig(groqCfg), nil

	default:
		geminiCfg := DefaultGeminiConfig(key)
		if cfg.GeminiModel != "" {
			geminiCfg.Model = cfg.GeminiModel
		}
		if cfg.Timeout > 0 {
			geminiCfg.Timeout = cfg.Timeout
		}
		return NewGeminiClientWithConfig(geminiCfg), nil
	}
}
