package assistant

import (
	"context"

	"github.com/studyassist/rag-backend/internal/entity"
	"github.com/studyassist/rag-backend/internal/llm"
)

// Embedder turns texts into similarity-comparable vectors.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// CompletionClient generates an answer from a composed prompt.
type CompletionClient interface {
	Complete(ctx context.Context, messages []llm.Message, temperature float32) (string, error)
}

// VectorStore holds per-session chunk collections.
type VectorStore interface {
	CreateCollection(ctx context.Context, name string, chunks []entity.DocumentChunk, vectors [][]float32) error
	Search(ctx context.Context, name string, vector []float32, k int) ([]entity.ScoredChunk, error)
	DeleteCollection(ctx context.Context, name string) error
}
