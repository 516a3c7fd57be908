package vectorstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/studyassist/rag-backend/internal/entity"
)

type memoryCollection struct {
	chunks  []entity.DocumentChunk
	vectors [][]float32
}

// MemoryStore is a process-local store using brute-force cosine similarity.
// Vectors are expected to be L2-normalized, so similarity is a dot product.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]*memoryCollection),
	}
}

func (s *MemoryStore) CreateCollection(_ context.Context, name string, chunks []entity.DocumentChunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunks and vectors length mismatch: %d vs %d", len(chunks), len(vectors))
	}
	if len(chunks) == 0 {
		return fmt.Errorf("collection %q must not be empty", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.collections[name]; exists {
		return fmt.Errorf("collection %q already exists", name)
	}

	s.collections[name] = &memoryCollection{
		chunks:  chunks,
		vectors: vectors,
	}
	return nil
}

func (s *MemoryStore) Search(_ context.Context, name string, vector []float32, k int) ([]entity.ScoredChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	coll, ok := s.collections[name]
	if !ok {
		return nil, fmt.Errorf("collection %q not found", name)
	}

	scored := make([]entity.ScoredChunk, len(coll.chunks))
	for i, chunk := range coll.chunks {
		scored[i] = entity.ScoredChunk{
			DocumentChunk: chunk,
			Score:         dot(coll.vectors[i], vector),
		}
	}

	// Stable sort keeps insertion order for equal scores, so results are
	// deterministic.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k], nil
}

func (s *MemoryStore) DeleteCollection(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections, name)
	return nil
}

func dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

var _ Store = (*MemoryStore)(nil)
