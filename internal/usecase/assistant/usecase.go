// Package assistant implements the document-to-answer pipeline: indexing
// uploads into a session-scoped vector collection and answering questions
// grounded in the retrieved chunks.
package assistant

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/studyassist/rag-backend/internal/chunker"
	"github.com/studyassist/rag-backend/internal/document"
	"github.com/studyassist/rag-backend/internal/entity"
	"github.com/studyassist/rag-backend/internal/pkg/formatter"
	"github.com/studyassist/rag-backend/internal/prompt"
	"github.com/studyassist/rag-backend/internal/session"
	"github.com/studyassist/rag-backend/internal/vectorstore"
	"go.uber.org/zap"
)

// Usecase implements the study assistant business logic
type Usecase struct {
	loader   *document.Loader
	splitter *chunker.Splitter
	embedder Embedder
	vectors  VectorStore
	llm      CompletionClient
	sessions *session.Store
	topK     int
	logger   *zap.Logger
}

// NewUsecase creates a new assistant use case
func NewUsecase(
	loader *document.Loader,
	splitter *chunker.Splitter,
	embedder Embedder,
	vectors VectorStore,
	llmClient CompletionClient,
	sessions *session.Store,
	topK int,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		loader:   loader,
		splitter: splitter,
		embedder: embedder,
		vectors:  vectors,
		llm:      llmClient,
		sessions: sessions,
		topK:     topK,
		logger:   logger,
	}
}

// IndexDocuments loads, chunks and embeds the upload batch into a fresh
// collection and creates the session owning it. A batch in which no file
// yields content is rejected with ErrNoContent.
func (uc *Usecase) IndexDocuments(ctx context.Context, files []entity.FileData) (entity.Session, error) {
	units := uc.loader.Load(ctx, files)
	chunks := uc.splitter.Split(units)
	if len(chunks) == 0 {
		return entity.Session{}, entity.ErrNoContent
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	vectors, err := uc.embedder.Embed(ctx, texts)
	if err != nil {
		return entity.Session{}, fmt.Errorf("embed chunks: %w", err)
	}

	collection := vectorstore.NewCollectionName()
	if err := uc.vectors.CreateCollection(ctx, collection, chunks, vectors); err != nil {
		return entity.Session{}, fmt.Errorf("create collection: %w", err)
	}

	sess := uc.sessions.Create(collection, len(chunks))

	ctxzap.Info(ctx, "documents indexed",
		zap.String("session_id", sess.ID),
		zap.String("collection", collection),
		zap.Int("file_count", len(files)),
		zap.Int("chunk_count", len(chunks)),
	)

	return sess, nil
}

// Ask retrieves the top-k chunks for the question, composes the prompt
// with the request-supplied history and the selected answer profile, and
// returns the model's answer. The exchange is appended to the stored
// session history on success.
func (uc *Usecase) Ask(ctx context.Context, req *entity.ChatRequest) (string, error) {
	sess, ok := uc.sessions.Get(req.SessionID)
	if !ok {
		return "", entity.ErrSessionNotFound
	}

	profile := prompt.ProfileFor(req.AnswerType)

	queryVectors, err := uc.embedder.Embed(ctx, []string{req.Question})
	if err != nil {
		return "", fmt.Errorf("embed question: %w", err)
	}
	if len(queryVectors) == 0 {
		return "", fmt.Errorf("embedder returned no vectors")
	}

	chunks, err := uc.vectors.Search(ctx, sess.Collection, queryVectors[0], uc.topK)
	if err != nil {
		return "", fmt.Errorf("vector search: %w", err)
	}

	messages := prompt.Compose(req.Question, req.ChatHistory, chunks, profile)

	answer, err := uc.llm.Complete(ctx, messages, profile.Temperature)
	if err != nil {
		return "", fmt.Errorf("llm complete: %w", err)
	}

	uc.sessions.AppendExchange(req.SessionID, req.Question, answer)

	ctxzap.Info(ctx, "question answered",
		zap.String("profile", profile.Name),
		zap.Int("retrieved_chunks", len(chunks)),
		zap.Int("answer_length", len(answer)),
	)

	return answer, nil
}

// DeleteSession removes the session and drops its vector collection.
func (uc *Usecase) DeleteSession(ctx context.Context, sessionID string) error {
	sess, ok := uc.sessions.Delete(sessionID)
	if !ok {
		return entity.ErrSessionNotFound
	}

	if err := uc.vectors.DeleteCollection(ctx, sess.Collection); err != nil {
		// The session is already gone; an orphaned collection is logged,
		// not surfaced.
		ctxzap.Warn(ctx, "failed to drop collection of deleted session",
			zap.String("collection", sess.Collection),
			zap.Error(err),
		)
	}

	return nil
}

// ListSessions returns the active session ids.
func (uc *Usecase) ListSessions(_ context.Context) []string {
	return uc.sessions.List()
}

// ExportTranscript renders the session's conversation history in the
// requested format.
func (uc *Usecase) ExportTranscript(ctx context.Context, sessionID, format string) ([]byte, string, string, error) {
	sess, ok := uc.sessions.Get(sessionID)
	if !ok {
		return nil, "", "", entity.ErrSessionNotFound
	}

	fmtr, err := formatter.NewFactory().Create(format)
	if err != nil {
		return nil, "", "", err
	}

	body, err := fmtr.Format(renderTranscript(sess.History))
	if err != nil {
		return nil, "", "", fmt.Errorf("format transcript: %w", err)
	}

	filename := "session-" + sessionID + fmtr.FileExtension()

	ctxzap.Info(ctx, "transcript exported",
		zap.String("format", format),
		zap.Int("turn_count", len(sess.History)),
	)

	return body, fmtr.ContentType(), filename, nil
}
