package document

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/studyassist/rag-backend/internal/entity"
)

// TextParser reads the file as UTF-8, dropping undecodable bytes.
type TextParser struct{}

func (TextParser) Parse(_ context.Context, path, filename string) ([]entity.DocumentChunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read txt: %w", err)
	}

	text := strings.ToValidUTF8(string(data), "")
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	return []entity.DocumentChunk{{
		Text:   text,
		Source: filename,
	}}, nil
}
