package assistant

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/studyassist/rag-backend/internal/entity"
	"github.com/studyassist/rag-backend/internal/pkg/validator"
)

// readUploads drains the multipart file headers into memory for the
// indexing pipeline.
func readUploads(fileHeaders []*multipart.FileHeader) ([]entity.FileData, error) {
	files := make([]entity.FileData, 0, len(fileHeaders))

	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open uploaded file '%s': %w", fh.Filename, err)
		}

		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read uploaded file '%s': %w", fh.Filename, err)
		}

		files = append(files, entity.FileData{
			Filename: validator.SanitizeFilename(fh.Filename),
			Content:  content,
		})
	}

	return files, nil
}
