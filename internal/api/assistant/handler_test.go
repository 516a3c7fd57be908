package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyassist/rag-backend/internal/config"
	"github.com/studyassist/rag-backend/internal/entity"
	"github.com/studyassist/rag-backend/internal/pkg/validator"
)

type stubUsecase struct {
	session     entity.Session
	indexErr    error
	answer      string
	askErr      error
	askedWith   *entity.ChatRequest
	deleteErr   error
	deletedID   string
	sessionIDs  []string
	exportBody  []byte
	exportCType string
	exportName  string
	exportErr   error
}

func (s *stubUsecase) IndexDocuments(ctx context.Context, files []entity.FileData) (entity.Session, error) {
	if s.indexErr != nil {
		return entity.Session{}, s.indexErr
	}
	return s.session, nil
}

func (s *stubUsecase) Ask(ctx context.Context, req *entity.ChatRequest) (string, error) {
	s.askedWith = req
	if s.askErr != nil {
		return "", s.askErr
	}
	return s.answer, nil
}

func (s *stubUsecase) DeleteSession(ctx context.Context, sessionID string) error {
	s.deletedID = sessionID
	return s.deleteErr
}

func (s *stubUsecase) ListSessions(ctx context.Context) []string {
	return s.sessionIDs
}

func (s *stubUsecase) ExportTranscript(ctx context.Context, sessionID, format string) ([]byte, string, string, error) {
	if s.exportErr != nil {
		return nil, "", "", s.exportErr
	}
	return s.exportBody, s.exportCType, s.exportName, nil
}

var _ AssistantUsecase = (*stubUsecase)(nil)

func newTestRouter(uc AssistantUsecase) http.Handler {
	cfg := config.FileUploadConfig{
		MaxFileSize:   1 << 20,
		MaxTotalSize:  4 << 20,
		MaxFileCount:  8,
		MaxUploadSize: 8 << 20,
	}
	h := NewHandler(uc, cfg, validator.NewFileValidator(cfg))

	r := chi.NewRouter()
	RegisterRoutes(r, h)
	return r
}

func multipartBody(t *testing.T, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := writer.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestUploadCreatesSession(t *testing.T) {
	uc := &stubUsecase{session: entity.Session{ID: "abc-123", Collection: "rag_1", ChunkCount: 3}}
	router := newTestRouter(uc)

	body, contentType := multipartBody(t, map[string]string{"notes.txt": "Paris is the capital of France."})
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp entity.UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "abc-123", resp.SessionID)
	assert.Equal(t, "Documents indexed successfully", resp.Message)
}

func TestUploadWithoutFiles(t *testing.T) {
	router := newTestRouter(&stubUsecase{})

	body, contentType := multipartBody(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadNoValidDocuments(t *testing.T) {
	uc := &stubUsecase{indexErr: entity.ErrNoContent}
	router := newTestRouter(uc)

	body, contentType := multipartBody(t, map[string]string{"blank.txt": "   "})
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp entity.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "No valid documents processed", resp.Message)
}

func TestChatReturnsAnswer(t *testing.T) {
	uc := &stubUsecase{answer: "Paris is the capital of France."}
	router := newTestRouter(uc)

	payload := `{"session_id":"abc-123","question":"What is the capital of France?","answer_type":"Short (2 Marks)"}`
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp entity.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Paris is the capital of France.", resp.Answer)
	assert.Equal(t, "abc-123", resp.SessionID)

	require.NotNil(t, uc.askedWith)
	assert.Equal(t, "Short (2 Marks)", uc.askedWith.AnswerType)
}

func TestChatValidation(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"missing session_id", `{"question":"q"}`},
		{"missing question", `{"session_id":"abc"}`},
		{"malformed body", `{not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&stubUsecase{})

			req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(tt.payload))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestChatUnknownSession(t *testing.T) {
	uc := &stubUsecase{askErr: entity.ErrSessionNotFound}
	router := newTestRouter(uc)

	payload := `{"session_id":"missing","question":"q"}`
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp entity.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Session not found", resp.Message)
}

func TestChatUpstreamFailure(t *testing.T) {
	uc := &stubUsecase{askErr: errors.New("llm complete: connection refused")}
	router := newTestRouter(uc)

	payload := `{"session_id":"abc","question":"q"}`
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp entity.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "connection refused")
}

func TestDeleteSession(t *testing.T) {
	uc := &stubUsecase{}
	router := newTestRouter(uc)

	req := httptest.NewRequest(http.MethodDelete, "/session/abc-123", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc-123", uc.deletedID)
}

func TestDeleteUnknownSession(t *testing.T) {
	uc := &stubUsecase{deleteErr: entity.ErrSessionNotFound}
	router := newTestRouter(uc)

	req := httptest.NewRequest(http.MethodDelete, "/session/missing", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListSessions(t *testing.T) {
	uc := &stubUsecase{sessionIDs: []string{"a", "b"}}
	router := newTestRouter(uc)

	req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp entity.ListSessionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"a", "b"}, resp.Sessions)
}

func TestExportTranscript(t *testing.T) {
	uc := &stubUsecase{
		exportBody:  []byte("# Study Session Transcript\n"),
		exportCType: "text/markdown; charset=utf-8",
		exportName:  "session-abc.md",
	}
	router := newTestRouter(uc)

	req := httptest.NewRequest(http.MethodGet, "/session/abc/export?format=markdown", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "session-abc.md")
	assert.Contains(t, rec.Body.String(), "Study Session Transcript")
}

func TestExportTranscriptUnsupportedFormat(t *testing.T) {
	uc := &stubUsecase{exportErr: entity.ErrUnsupportedFormat}
	router := newTestRouter(uc)

	req := httptest.NewRequest(http.MethodGet, "/session/abc/export?format=xlsx", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
