// Package llm invokes a chat completion model against a composed prompt.
package llm

import (
	"context"
	"fmt"

	"github.com/studyassist/rag-backend/internal/config"
	"go.uber.org/zap"
)

// Message roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one prompt message in conversation order.
type Message struct {
	Role    string
	Content string
}

// Client completes a prompt. Temperature is forwarded to the model;
// failures propagate to the caller without retries or fallback models.
type Client interface {
	Complete(ctx context.Context, messages []Message, temperature float32) (string, error)
}

// NewClient builds the completion client selected by configuration.
func NewClient(cfg *config.Config, logger *zap.Logger) (Client, error) {
	switch cfg.LLMCfg.Provider {
	case config.ProviderOllama:
		return NewOllamaClient(cfg.LLMCfg, cfg.OllamaCfg, logger), nil
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg.LLMCfg, cfg.OpenAICfg), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLMCfg.Provider)
	}
}
