package assistant

import (
	"context"

	"github.com/studyassist/rag-backend/internal/entity"
)

type AssistantUsecase interface {
	IndexDocuments(ctx context.Context, files []entity.FileData) (entity.Session, error)
	Ask(ctx context.Context, req *entity.ChatRequest) (string, error)
	DeleteSession(ctx context.Context, sessionID string) error
	ListSessions(ctx context.Context) []string
	ExportTranscript(ctx context.Context, sessionID, format string) (body []byte, contentType, filename string, err error)
}
