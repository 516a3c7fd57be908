// Package embedding turns text into fixed-dimension vectors through an
// external embedding service.
package embedding

import (
	"context"
	"fmt"
	"math"

	"github.com/studyassist/rag-backend/internal/config"
	"go.uber.org/zap"
)

// Embedder computes one vector per input text. Implementations must
// return vectors of a consistent dimension within a single process.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// NewEmbedder builds the embedder selected by configuration.
func NewEmbedder(cfg *config.Config, logger *zap.Logger) (Embedder, error) {
	switch cfg.EmbeddingCfg.Provider {
	case config.ProviderOllama:
		return NewOllamaEmbedder(cfg.EmbeddingCfg, cfg.OllamaCfg, logger), nil
	case config.ProviderOpenAI:
		return NewOpenAIEmbedder(cfg.EmbeddingCfg, cfg.OpenAICfg), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.EmbeddingCfg.Provider)
	}
}

// normalize scales a vector to unit length. Cosine similarity over
// normalized vectors reduces to a dot product, and both vector store
// backends rely on that.
func normalize(vec []float32) []float32 {
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)

	if magnitude == 0 {
		return vec
	}

	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = float32(float64(v) / magnitude)
	}
	return out
}
