package service

import (
	"context"

	"imovel-searcher/internal/config"
)

// CompletionClient is the interface for language-model providers used by
// the criteria extractor
type CompletionClient interface {
	// CompleteJSON sends one system instruction and one user message and
	// returns the raw content of the reply, constrained to a JSON object
	CompleteJSON(ctx context.Context, systemPrompt, userText string) (string, error)
}

// Ensure OpenAIClient implements CompletionClient
var _ CompletionClient = (*OpenAIClient)(nil)

// NewCompletionClient returns the OpenAI-compatible client for cfg, or nil
// when no API key is configured so that extraction uses the heuristic.
func NewCompletionClient(cfg *config.OpenAIConfig) CompletionClient {
	if cfg == nil || !cfg.Enabled {
		return nil
	}
	return NewOpenAIClient(cfg)
}
