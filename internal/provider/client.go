// Package provider implements the LLM completion clients used by the
// mapper. Each provider is a thin transport around its HTTP API: one prompt
// in, raw text out, JSON response mode requested when the upstream supports
// it. Payload budgeting lives in the prompt package, not here, and no
// provider performs retries; a failed call surfaces immediately.
package provider

import (
	"context"
	"errors"
)

// Provider identifies an upstream completion service.
type Provider string

const (
	// ProviderGemini is the high-capacity default provider.
	ProviderGemini Provider = "gemini"
	// ProviderGroq is the budget-constrained provider.
	ProviderGroq Provider = "groq"
)

// Client is the capability the mapper depends on.
type Client interface {
	// Complete sends a prompt and returns the raw completion text. The
	// request asks for a JSON-formatted response.
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured reports a missing or placeholder credential. It is
// returned before any network I/O.
var ErrNotConfigured = errors.New("API key not configured")
