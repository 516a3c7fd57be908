package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/studyassist/rag-backend/internal/config"
	"github.com/studyassist/rag-backend/internal/pkg/retry"
	pkghttp "github.com/studyassist/rag-backend/pkg/http"
	"go.uber.org/zap"
)

const ollamaChatEndpoint = "/api/chat"

type ollamaClient struct {
	connector *pkghttp.Connector
	model     string
	retryCfg  retry.RetryConfig
}

type ollamaChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatOptions struct {
	Temperature float32 `json:"temperature"`
}

type ollamaChatRequest struct {
	Model    string              `json:"model"`
	Messages []ollamaChatMessage `json:"messages"`
	Stream   bool                `json:"stream"`
	Options  ollamaChatOptions   `json:"options"`
}

type ollamaChatResponse struct {
	Message ollamaChatMessage `json:"message"`
	Done    bool              `json:"done"`
	Error   string            `json:"error,omitempty"`
}

// NewOllamaClient completes through an Ollama server's chat API.
func NewOllamaClient(cfg config.LLMConfig, ollamaCfg config.OllamaConfig, logger *zap.Logger) Client {
	connector := pkghttp.NewConnector(
		&pkghttp.ConnectorConfig{
			BaseURL: ollamaCfg.Url,
			Logger:  logger,
		},
		pkghttp.WithRequestTimeout(ollamaCfg.RequestTimeout),
		pkghttp.WithConnClientTimeout(ollamaCfg.ConnTimeout),
		pkghttp.WithClientKeepAlive(ollamaCfg.KeepAlive),
		pkghttp.WithIdleConnTimeout(ollamaCfg.IdleConnTimeout),
		pkghttp.WithResponseHeaderTimeout(ollamaCfg.ResponseHeaderTimeout),
		pkghttp.WithRequestLogging(),
		pkghttp.WithAuthToken(ollamaCfg.Token),
	)

	return &ollamaClient{
		connector: connector,
		model:     cfg.Model,
		retryCfg:  cfg.Retry,
	}
}

func (c *ollamaClient) Complete(ctx context.Context, messages []Message, temperature float32) (string, error) {
	req := ollamaChatRequest{
		Model:    c.model,
		Messages: make([]ollamaChatMessage, len(messages)),
		Stream:   false,
		Options:  ollamaChatOptions{Temperature: temperature},
	}
	for i, msg := range messages {
		req.Messages[i] = ollamaChatMessage{Role: msg.Role, Content: msg.Content}
	}

	var resp ollamaChatResponse
	err := retry.Do(func() error {
		return c.connector.DoRequest(ctx, http.MethodPost, ollamaChatEndpoint, req, &resp)
	}, &c.retryCfg)
	if err != nil {
		return "", fmt.Errorf("call ollama chat API: %w", err)
	}

	if resp.Error != "" {
		return "", fmt.Errorf("ollama chat error: %s", resp.Error)
	}

	return resp.Message.Content, nil
}
