package embedding

import (
	"fmt"

	"ai-salesagent-be/internal/config"
)

func NewProvider(cfg *config.Config) (Provider, error) {
	switch cfg.Ai.EmbeddingProvider {
	case "gemini":
		return NewGeminiProvider(cfg.Keys.GoogleGemini, cfg.Ai.EmbeddingModel), nil
	case "ollama":
		return NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Ai.EmbeddingProvider)
	}
}
