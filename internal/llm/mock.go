package llm

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "in": true,
	"is": true, "it": true, "of": true, "on": true, "the": true,
	"to": true, "what": true, "when": true, "where": true,
	"which": true, "who": true, "why": true, "how": true,
}

// MockClient answers offline from the context block of the system prompt:
// the first context sentence containing every content word of the question
// wins, otherwise the provided fallback answer is returned. Deterministic,
// used when mocks are enabled and in tests.
type MockClient struct {
	fallback string
	logger   *zap.Logger
}

func NewMockClient(fallback string, logger *zap.Logger) *MockClient {
	return &MockClient{
		fallback: fallback,
		logger:   logger,
	}
}

func (m *MockClient) Complete(ctx context.Context, messages []Message, temperature float32) (string, error) {
	ctxzap.Debug(ctx, "[MOCK] completing prompt",
		zap.Int("message_count", len(messages)),
		zap.Float32("temperature", temperature),
	)

	contextBlock := extractContextBlock(messages)
	question := lastUserMessage(messages)

	terms := contentWords(question)
	if len(terms) == 0 || contextBlock == "" {
		return m.fallback, nil
	}

	for _, sentence := range splitSentences(contextBlock) {
		lower := strings.ToLower(sentence)
		matched := true
		for _, term := range terms {
			if !strings.Contains(lower, term) {
				matched = false
				break
			}
		}
		if matched {
			return strings.TrimSpace(sentence), nil
		}
	}

	return m.fallback, nil
}

// extractContextBlock returns the text after the "Context:" marker of the
// system message.
func extractContextBlock(messages []Message) string {
	for _, msg := range messages {
		if msg.Role != RoleSystem {
			continue
		}
		if _, after, found := strings.Cut(msg.Content, "Context:"); found {
			return after
		}
	}
	return ""
}

func lastUserMessage(messages []Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			return messages[i].Content
		}
	}
	return ""
}

func contentWords(text string) []string {
	var words []string
	for _, field := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return r == ' ' || r == '?' || r == '!' || r == '.' || r == ',' || r == '\n'
	}) {
		if !stopwords[field] {
			words = append(words, field)
		}
	}
	return words
}

func splitSentences(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '\n'
	})
}
