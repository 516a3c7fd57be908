// Package vectorstore provides per-session similarity-searchable chunk
// collections over pluggable backends.
package vectorstore

import (
	"context"
	"fmt"
	"time"

	"github.com/studyassist/rag-backend/internal/entity"
)

// Store holds named chunk collections. A collection is written once at
// session creation and only queried or dropped afterwards; there are no
// incremental updates.
type Store interface {
	// CreateCollection stores the chunk set with its vectors under name.
	// chunks and vectors must be parallel slices.
	CreateCollection(ctx context.Context, name string, chunks []entity.DocumentChunk, vectors [][]float32) error

	// Search returns the k nearest chunks to vector by cosine similarity,
	// fewer when the collection is smaller.
	Search(ctx context.Context, name string, vector []float32, k int) ([]entity.ScoredChunk, error)

	// DeleteCollection drops the collection. Dropping an unknown name is
	// not an error.
	DeleteCollection(ctx context.Context, name string) error
}

// NewCollectionName derives a fresh collection name from the creation
// timestamp, unique across sessions within a process.
func NewCollectionName() string {
	return fmt.Sprintf("rag_%d", time.Now().UnixNano())
}
