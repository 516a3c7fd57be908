package document

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/studyassist/rag-backend/internal/entity"
)

// minPageChars filters blank and scanned-image pages: a page is kept only
// when its stripped text is longer than this, counted in runes.
const minPageChars = 5

func pageKept(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) > minPageChars
}

// PDFParser extracts one text unit per PDF page.
type PDFParser struct{}

func (PDFParser) Parse(_ context.Context, path, filename string) ([]entity.DocumentChunk, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var units []entity.DocumentChunk
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extract pdf page %d: %w", i, err)
		}

		if !pageKept(text) {
			continue
		}

		units = append(units, entity.DocumentChunk{
			Text:   text,
			Source: filename,
		})
	}

	return units, nil
}
