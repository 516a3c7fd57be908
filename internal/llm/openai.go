package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"github.com/studyassist/rag-backend/internal/config"
)

type openAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient completes through the OpenAI chat completions API (or
// any compatible endpoint via OPENAI_BASE_URL).
func NewOpenAIClient(cfg config.LLMConfig, apiCfg config.OpenAIConfig) Client {
	clientCfg := openai.DefaultConfig(apiCfg.APIKey)
	if apiCfg.BaseURL != "" {
		clientCfg.BaseURL = apiCfg.BaseURL
	}

	return &openAIClient{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}
}

func (c *openAIClient) Complete(ctx context.Context, messages []Message, temperature float32) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: temperature,
		Messages:    make([]openai.ChatCompletionMessage, len(messages)),
	}
	for i, msg := range messages {
		req.Messages[i] = openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("create openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
