package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/studyassist/rag-backend/internal/config"
	"github.com/studyassist/rag-backend/internal/entity"
	"github.com/studyassist/rag-backend/internal/pkg/logger"
	"github.com/studyassist/rag-backend/internal/pkg/response"
	"github.com/studyassist/rag-backend/internal/pkg/validator"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   AssistantUsecase
	cfg       config.FileUploadConfig
	validator *validator.Validator
}

func NewHandler(
	usecase AssistantUsecase,
	cfg config.FileUploadConfig,
	validator *validator.Validator,
) *Handler {
	return &Handler{
		usecase:   usecase,
		cfg:       cfg,
		validator: validator,
	}
}

// Upload handles POST /upload - Index documents into a new session
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Upload")

	if err := r.ParseMultipartForm(h.cfg.MaxUploadSize); err != nil {
		ctxzap.Error(ctx, "failed to parse multipart form", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid form data or size too large")
		return
	}

	fileHeaders := r.MultipartForm.File["files"]
	if err := h.validator.ValidateUpload(fileHeaders); err != nil {
		ctxzap.Error(ctx, "failed to validate upload", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	files, err := readUploads(fileHeaders)
	if err != nil {
		ctxzap.Error(ctx, "failed to read uploaded files", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	ctxzap.Info(ctx, "indexing uploaded documents", zap.Int("file_count", len(files)))

	sess, err := h.usecase.IndexDocuments(ctx, files)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, entity.UploadResponse{
		SessionID: sess.ID,
		Message:   "Documents indexed successfully",
	})
}

// Chat handles POST /chat - Answer a question against a session's documents
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Chat")

	var req entity.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validateChatRequest(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx = logger.WithSession(ctx, req.SessionID)
	ctxzap.Info(ctx, "answering question",
		zap.String("answer_type", req.AnswerType),
		zap.Int("history_turns", len(req.ChatHistory)),
	)

	answer, err := h.usecase.Ask(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, entity.ChatResponse{
		Answer:    answer,
		SessionID: req.SessionID,
	})
}

// DeleteSession handles DELETE /session/{id}
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.WithSession(logger.WithAction(r.Context(), "DeleteSession"), sessionID)

	if err := h.usecase.DeleteSession(ctx, sessionID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "session deleted")

	response.Success(w, entity.DeleteSessionResponse{Message: "Session deleted"})
}

// ListSessions handles GET /sessions
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListSessions")

	ids := h.usecase.ListSessions(ctx)

	ctxzap.Debug(ctx, "sessions listed", zap.Int("count", len(ids)))

	response.Success(w, entity.ListSessionsResponse{Sessions: ids})
}

// ExportTranscript handles GET /session/{id}/export?format=markdown|docx|pdf
func (h *Handler) ExportTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.WithSession(logger.WithAction(r.Context(), "ExportTranscript"), sessionID)

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "markdown"
	}

	body, contentType, filename, err := h.usecase.ExportTranscript(ctx, sessionID, format)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Attachment(w, contentType, filename, body)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	ctxzap.Error(ctx, "request failed", zap.Error(err))

	switch {
	case errors.Is(err, entity.ErrSessionNotFound):
		response.Error(w, http.StatusNotFound, "Session not found")
	case errors.Is(err, entity.ErrNoContent):
		response.Error(w, http.StatusBadRequest, "No valid documents processed")
	case errors.Is(err, entity.ErrMissingField),
		errors.Is(err, entity.ErrUnsupportedFormat):
		response.Error(w, http.StatusBadRequest, err.Error())
	default:
		// Upstream failures surface the underlying message.
		response.Error(w, http.StatusInternalServerError, err.Error())
	}
}

func validateChatRequest(req *entity.ChatRequest) error {
	if req.SessionID == "" {
		return fmt.Errorf("%w: session_id", entity.ErrMissingField)
	}
	if req.Question == "" {
		return fmt.Errorf("%w: question", entity.ErrMissingField)
	}
	return nil
}
