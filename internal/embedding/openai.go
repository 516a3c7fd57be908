package embedding

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"github.com/studyassist/rag-backend/internal/config"
)

type openAIEmbedder struct {
	client    *openai.Client
	model     string
	dimension int
}

// NewOpenAIEmbedder embeds through the OpenAI embeddings API (or any
// compatible endpoint via OPENAI_BASE_URL).
func NewOpenAIEmbedder(cfg config.EmbeddingConfig, apiCfg config.OpenAIConfig) Embedder {
	clientCfg := openai.DefaultConfig(apiCfg.APIKey)
	if apiCfg.BaseURL != "" {
		clientCfg.BaseURL = apiCfg.BaseURL
	}

	return &openAIEmbedder{
		client:    openai.NewClientWithConfig(clientCfg),
		model:     cfg.Model,
		dimension: cfg.Dimension,
	}
}

func (e *openAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(e.model),
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("create openai embeddings: %w", err)
	}

	results := make([][]float32, len(resp.Data))
	for i, datum := range resp.Data {
		if e.dimension > 0 && len(datum.Embedding) != e.dimension {
			return nil, fmt.Errorf("openai embedding dimension mismatch: expected %d, got %d", e.dimension, len(datum.Embedding))
		}
		results[i] = normalize(datum.Embedding)
	}

	return results, nil
}
