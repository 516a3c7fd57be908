// Package document converts uploaded files into plain-text units tagged
// with their source filename. Parsers are resolved through an explicit
// extension registry; files nobody can parse contribute nothing instead
// of failing the batch.
package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/studyassist/rag-backend/internal/entity"
	"go.uber.org/zap"
)

// Parser extracts text units from a file on disk. Each returned chunk is
// tagged with the originating upload filename, not the temp path.
type Parser interface {
	Parse(ctx context.Context, path, filename string) ([]entity.DocumentChunk, error)
}

type Loader struct {
	parsers map[string]Parser
}

// NewLoader returns a loader with the built-in pdf, docx and txt parsers.
func NewLoader() *Loader {
	return &Loader{
		parsers: map[string]Parser{
			".pdf":  PDFParser{},
			".docx": DOCXParser{},
			".txt":  TextParser{},
		},
	}
}

// Register adds or replaces the parser for an extension (with leading dot).
func (l *Loader) Register(ext string, p Parser) {
	l.parsers[strings.ToLower(ext)] = p
}

// Load parses every supported file in the batch. Unsupported extensions
// and unreadable files are skipped; the result may be empty.
func (l *Loader) Load(ctx context.Context, files []entity.FileData) []entity.DocumentChunk {
	var units []entity.DocumentChunk

	for _, file := range files {
		ext := strings.ToLower(filepath.Ext(file.Filename))

		parser, ok := l.parsers[ext]
		if !ok {
			ctxzap.Debug(ctx, "skipping unsupported file",
				zap.String("filename", file.Filename),
				zap.String("extension", ext),
			)
			continue
		}

		parsed, err := l.parseViaTempFile(ctx, parser, file, ext)
		if err != nil {
			ctxzap.Warn(ctx, "failed to parse file, skipping",
				zap.String("filename", file.Filename),
				zap.Error(err),
			)
			continue
		}

		units = append(units, parsed...)
	}

	return units
}

// parseViaTempFile writes the upload to a temp file for the parser and
// removes it on every exit path.
func (l *Loader) parseViaTempFile(ctx context.Context, parser Parser, file entity.FileData, ext string) ([]entity.DocumentChunk, error) {
	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.Write(file.Content); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	return parser.Parse(ctx, path, file.Filename)
}
