package embedding

import (
	"context"
	"fmt"
	"net/http"

	"github.com/studyassist/rag-backend/internal/config"
	"github.com/studyassist/rag-backend/internal/pkg/retry"
	pkghttp "github.com/studyassist/rag-backend/pkg/http"
	"go.uber.org/zap"
)

const ollamaEmbeddingsEndpoint = "/api/embeddings"

type ollamaEmbedder struct {
	connector *pkghttp.Connector
	model     string
	dimension int
	retryCfg  retry.RetryConfig
}

type ollamaEmbeddingRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaEmbeddingResponse struct {
	Embedding []float64 `json:"embedding"`
}

// NewOllamaEmbedder embeds through an Ollama server's embeddings API, one
// request per text.
func NewOllamaEmbedder(cfg config.EmbeddingConfig, ollamaCfg config.OllamaConfig, logger *zap.Logger) Embedder {
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

	return &ollamaEmbedder{
		connector: connector,
		model:     cfg.Model,
		dimension: cfg.Dimension,
		retryCfg:  cfg.Retry,
	}
}

func (e *ollamaEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	results := make([][]float32, 0, len(texts))

	for _, text := range texts {
		req := ollamaEmbeddingRequest{Model: e.model, Prompt: text}

		var resp ollamaEmbeddingResponse
		err := retry.Do(func() error {
			return e.connector.DoRequest(ctx, http.MethodPost, ollamaEmbeddingsEndpoint, req, &resp)
		}, &e.retryCfg)
		if err != nil {
			return nil, fmt.Errorf("call ollama embeddings API: %w", err)
		}

		vec := make([]float32, len(resp.Embedding))
		for i, value := range resp.Embedding {
			vec[i] = float32(value)
		}

		if e.dimension > 0 && len(vec) != e.dimension {
			return nil, fmt.Errorf("ollama embedding dimension mismatch: expected %d, got %d", e.dimension, len(vec))
		}

		results = append(results, normalize(vec))
	}

	return results, nil
}
