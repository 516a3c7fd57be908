// Package chunker splits loaded text units into overlapping passages
// sized for embedding.
package chunker

import (
	"strings"

	"github.com/studyassist/rag-backend/internal/entity"
)

// boundary separators in preference order; the final hard cut applies
// when none is found near the target size.
var separators = []string{"\n\n", "\n", ". ", " "}

// Splitter produces passages of at most chunkSize characters, consecutive
// passages from the same unit overlapping by overlap characters. Splitting
// prefers paragraph, then sentence, then word boundaries before cutting
// mid-word. Output is deterministic for a given input.
type Splitter struct {
	chunkSize int
	overlap   int
}

func NewSplitter(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = 900
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = chunkSize / 6
	}
	return &Splitter{
		chunkSize: chunkSize,
		overlap:   overlap,
	}
}

// Split chunks every unit, propagating the source filename to each passage.
func (s *Splitter) Split(units []entity.DocumentChunk) []entity.DocumentChunk {
	var out []entity.DocumentChunk
	for _, unit := range units {
		for _, passage := range s.splitText(unit.Text) {
			out = append(out, entity.DocumentChunk{
				Text:   passage,
				Source: unit.Source,
			})
		}
	}
	return out
}

func (s *Splitter) splitText(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	runes := []rune(text)
	if len(runes) <= s.chunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0
	for {
		end := start + s.chunkSize
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			return chunks
		}

		cut := s.cutPoint(runes, start, end)
		chunks = append(chunks, string(runes[start:cut]))

		next := cut - s.overlap
		if next <= start {
			// The passage was shorter than the overlap; move on without
			// overlapping rather than looping.
			next = cut
		}
		start = next
	}
}

// cutPoint searches backward from end for the most natural boundary in the
// second half of the window, falling back to a hard cut at end.
func (s *Splitter) cutPoint(runes []rune, start, end int) int {
	window := string(runes[start:end])
	lowest := len(window) / 2

	for _, sep := range separators {
		if idx := strings.LastIndex(window, sep); idx >= lowest {
			// Cut after the separator so it stays with the left passage.
			return start + len([]rune(window[:idx+len(sep)]))
		}
	}

	return end
}
