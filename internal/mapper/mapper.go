package mapper

import (
	"context"

	"go.uber.org/zap"

	"scribe/internal/config"
	"scribe/internal/framework"
	"scribe/internal/prompt"
	"scribe/internal/provider"
)

// Mapper runs the mapping pipeline. It holds no per-request state; a single
// Mapper is safe for concurrent use as long as the framework snapshots it
// is given are not mutated.
type Mapper struct {
	cfg    *config.Config
	logger *zap.Logger

	// newClient is swapped out in tests.
	newClient func(cfg *config.Config, id string) (provider.Client, error)
}

// New creates a Mapper.
func New(cfg *config.Config, logger *zap.Logger) *Mapper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mapper{
		cfg:       cfg,
		logger:    logger,
		newClient: provider.NewClient,
	}
}

// Map maps one activity description onto the training plan. providerID
// selects the upstream service; unknown values default to Gemini. The
// returned list is always renderable: populated, legitimately empty, or the
// one-element error sentinel. Map never returns an error.
func (m *Mapper) Map(ctx context.Context, activity string, fw *framework.Framework, providerID string) []Result {
	p := provider.Resolve(providerID)
	m.logger.Info("Using LLM provider", zap.String("provider", string(p)))

	target, evidence := SplitInput(activity)
	if target != "" {
		m.logger.Info("Explicit competency targeted", zap.String("target", target))
	}

	raw, err := m.invoke(ctx, evidence, target, fw, p)
	if err != nil {
		m.logger.Error("Mapping failed", zap.String("provider", string(p)), zap.Error(err))
		return Fallback(activity, err)
	}

	candidates := Normalize(raw, m.logger)
	return Resolve(candidates, fw.Plan, target, activity)
}

func (m *Mapper) invoke(ctx context.Context, evidence, target string, fw *framework.Framework, p provider.Provider) (string, error) {
	promptText, err := prompt.Assemble(fw, evidence, target, prompt.PolicyFor(string(p)))
	if err != nil {
		return "", err
	}

	client, err := m.newClient(m.cfg, string(p))
	if err != nil {
		return "", err
	}

	m.logger.Info("Sending mapping request",
		zap.String("provider", string(p)),
		zap.Int("prompt_chars", len(promptText)))
	return client.Complete(ctx, promptText)
}
