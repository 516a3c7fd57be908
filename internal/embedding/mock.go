package embedding

import (
	"context"
	"hash/fnv"
	"strings"
	"unicode"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const mockDimension = 256

// MockEmbedder is a deterministic offline embedder: each token is hashed
// into a fixed-dimension bag-of-words vector, so texts sharing terms come
// out similar under cosine. Used when mocks are enabled and in tests.
type MockEmbedder struct {
	logger *zap.Logger
}

func NewMockEmbedder(logger *zap.Logger) *MockEmbedder {
	return &MockEmbedder{logger: logger}
}

func (m *MockEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	ctxzap.Debug(ctx, "[MOCK] embedding texts", zap.Int("count", len(texts)))

	results := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, mockDimension)
		for _, token := range tokenize(text) {
			h := fnv.New32a()
			h.Write([]byte(token))
			vec[h.Sum32()%mockDimension]++
		}
		results[i] = normalize(vec)
	}

	return results, nil
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
