package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/studyassist/rag-backend/internal/chunker"
	"github.com/studyassist/rag-backend/internal/config"
	"github.com/studyassist/rag-backend/internal/document"
	"github.com/studyassist/rag-backend/internal/embedding"
	"github.com/studyassist/rag-backend/internal/entity"
	"github.com/studyassist/rag-backend/internal/llm"
	"github.com/studyassist/rag-backend/internal/prompt"
	"github.com/studyassist/rag-backend/internal/session"
	"github.com/studyassist/rag-backend/internal/vectorstore"
	"go.uber.org/zap"
)

func testContext() context.Context {
	return ctxzap.ToContext(context.Background(), zap.NewNop())
}

// newTestUsecase wires the full offline pipeline: real loader, splitter,
// session store and memory vector store plus the mock model clients.
func newTestUsecase() *Usecase {
	logger := zap.NewNop()
	return NewUsecase(
		document.NewLoader(),
		chunker.NewSplitter(900, 150),
		embedding.NewMockEmbedder(logger),
		vectorstore.NewMemoryStore(),
		llm.NewMockClient(prompt.FallbackAnswer, logger),
		session.NewStore(config.SessionConfig{TTL: 0, CleanupInterval: time.Minute}),
		4,
		logger,
	)
}

const studyNotes = "Paris is the capital of France. " +
	"The Eiffel Tower was completed in 1889. " +
	"France is a country in western Europe."

func uploadNotes(t *testing.T, uc *Usecase) entity.Session {
	t.Helper()
	sess, err := uc.IndexDocuments(testContext(), []entity.FileData{
		{Filename: "notes.txt", Content: []byte(studyNotes)},
	})
	if err != nil {
		t.Fatalf("index documents: %v", err)
	}
	return sess
}

func TestIndexDocumentsCreatesSession(t *testing.T) {
	uc := newTestUsecase()

	sess := uploadNotes(t, uc)

	if sess.ID == "" {
		t.Error("session must have an id")
	}
	if sess.Collection == "" {
		t.Error("session must own a collection")
	}
	if sess.ChunkCount == 0 {
		t.Error("session must record its chunk count")
	}
}

func TestIndexDocumentsRejectsEmptyBatch(t *testing.T) {
	uc := newTestUsecase()

	_, err := uc.IndexDocuments(testContext(), []entity.FileData{
		{Filename: "slides.pptx", Content: []byte("unsupported")},
		{Filename: "blank.txt", Content: []byte("   ")},
	})

	if !errors.Is(err, entity.ErrNoContent) {
		t.Fatalf("expected ErrNoContent, got %v", err)
	}
}

func TestAskAnswersFromMaterial(t *testing.T) {
	uc := newTestUsecase()
	sess := uploadNotes(t, uc)

	answer, err := uc.Ask(testContext(), &entity.ChatRequest{
		SessionID: sess.ID,
		Question:  "What is the capital of France?",
	})
	if err != nil {
		t.Fatalf("ask: %v", err)
	}

	if !strings.Contains(answer, "Paris") {
		t.Errorf("answer should come from the uploaded material, got %q", answer)
	}
}

func TestAskFallsBackWhenAnswerAbsent(t *testing.T) {
	uc := newTestUsecase()
	sess := uploadNotes(t, uc)

	answer, err := uc.Ask(testContext(), &entity.ChatRequest{
		SessionID: sess.ID,
		Question:  "What is the capital of Japan?",
	})
	if err != nil {
		t.Fatalf("ask: %v", err)
	}

	if answer != prompt.FallbackAnswer {
		t.Errorf("expected the fallback phrase, got %q", answer)
	}
}

func TestAskUnknownSession(t *testing.T) {
	uc := newTestUsecase()

	_, err := uc.Ask(testContext(), &entity.ChatRequest{
		SessionID: "00000000-0000-0000-0000-000000000000",
		Question:  "anything",
	})

	if !errors.Is(err, entity.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestAskAppendsHistory(t *testing.T) {
	uc := newTestUsecase()
	sess := uploadNotes(t, uc)

	answer, err := uc.Ask(testContext(), &entity.ChatRequest{
		SessionID: sess.ID,
		Question:  "What is the capital of France?",
	})
	if err != nil {
		t.Fatalf("ask: %v", err)
	}

	got, ok := uc.sessions.Get(sess.ID)
	if !ok {
		t.Fatal("session disappeared")
	}
	if len(got.History) != 2 {
		t.Fatalf("expected 2 history turns, got %d", len(got.History))
	}
	if got.History[0].Role != entity.RoleUser || got.History[0].Content != "What is the capital of France?" {
		t.Error("first turn must be the user question")
	}
	if got.History[1].Role != entity.RoleAssistant || got.History[1].Content != answer {
		t.Error("second turn must be the returned answer")
	}
}

func TestDeleteSessionDropsCollection(t *testing.T) {
	uc := newTestUsecase()
	sess := uploadNotes(t, uc)

	if err := uc.DeleteSession(testContext(), sess.ID); err != nil {
		t.Fatalf("delete session: %v", err)
	}

	if err := uc.DeleteSession(testContext(), sess.ID); !errors.Is(err, entity.ErrSessionNotFound) {
		t.Fatalf("second delete: expected ErrSessionNotFound, got %v", err)
	}

	if _, err := uc.Ask(testContext(), &entity.ChatRequest{SessionID: sess.ID, Question: "q"}); !errors.Is(err, entity.ErrSessionNotFound) {
		t.Fatalf("chat after delete: expected ErrSessionNotFound, got %v", err)
	}
}

func TestListSessions(t *testing.T) {
	uc := newTestUsecase()

	if ids := uc.ListSessions(testContext()); len(ids) != 0 {
		t.Fatalf("fresh usecase must list no sessions, got %d", len(ids))
	}

	first := uploadNotes(t, uc)
	second := uploadNotes(t, uc)

	ids := uc.ListSessions(testContext())
	if len(ids) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(ids))
	}
	found := map[string]bool{}
	for _, id := range ids {
		found[id] = true
	}
	if !found[first.ID] || !found[second.ID] {
		t.Error("listing must contain every created session")
	}
}

func TestExportTranscriptMarkdown(t *testing.T) {
	uc := newTestUsecase()
	sess := uploadNotes(t, uc)

	if _, err := uc.Ask(testContext(), &entity.ChatRequest{
		SessionID: sess.ID,
		Question:  "What is the capital of France?",
	}); err != nil {
		t.Fatalf("ask: %v", err)
	}

	body, contentType, filename, err := uc.ExportTranscript(testContext(), sess.ID, "markdown")
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	if !strings.HasPrefix(contentType, "text/markdown") {
		t.Errorf("unexpected content type %q", contentType)
	}
	if !strings.HasSuffix(filename, ".md") {
		t.Errorf("unexpected filename %q", filename)
	}
	text := string(body)
	if !strings.Contains(text, "User: What is the capital of France?") {
		t.Error("transcript must contain the user turn")
	}
	if !strings.Contains(text, "Assistant: ") {
		t.Error("transcript must contain the assistant turn")
	}
}

func TestExportTranscriptUnsupportedFormat(t *testing.T) {
	uc := newTestUsecase()
	sess := uploadNotes(t, uc)

	_, _, _, err := uc.ExportTranscript(testContext(), sess.ID, "xlsx")
	if !errors.Is(err, entity.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestExportTranscriptUnknownSession(t *testing.T) {
	uc := newTestUsecase()

	_, _, _, err := uc.ExportTranscript(testContext(), "nope", "markdown")
	if !errors.Is(err, entity.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
