package document

import (
	"context"
	"fmt"
	"strings"

	"github.com/studyassist/rag-backend/internal/entity"
	"github.com/unidoc/unioffice/document"
)

// DOCXParser concatenates all paragraph texts into a single unit.
type DOCXParser struct{}

func (DOCXParser) Parse(_ context.Context, path, filename string) ([]entity.DocumentChunk, error) {
	doc, err := document.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	defer doc.Close()

	var paragraphs []string
	for _, para := range doc.Paragraphs() {
		var sb strings.Builder
		for _, run := range para.Runs() {
			sb.WriteString(run.Text())
		}
		paragraphs = append(paragraphs, sb.String())
	}

	text := strings.Join(paragraphs, "\n")
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	return []entity.DocumentChunk{{
		Text:   text,
		Source: filename,
	}}, nil
}
