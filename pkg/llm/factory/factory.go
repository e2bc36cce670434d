package factory

import (
	"fmt"

	"ai-salesagent-be/internal/config"
	"ai-salesagent-be/pkg/llm"
	"ai-salesagent-be/pkg/llm/ollama"
	"ai-salesagent-be/pkg/llm/openai"
)

// NewProvider picks a chat backend from config. Unknown providers are a
// startup error rather than a silent default.
func NewProvider(cfg *config.Config) (llm.Provider, error) {
	switch cfg.Ai.LLMProvider {
	case "openai":
		return openai.NewProvider(cfg.Keys.OpenAI, cfg.Ai.LLMBaseURL, cfg.Ai.LLMModel), nil
	case "ollama":
		return ollama.NewProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.LLMModel), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Ai.LLMProvider)
	}
}
