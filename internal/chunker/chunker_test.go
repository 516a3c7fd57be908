package chunker

import (
	"strings"
	"testing"

	"github.com/studyassist/rag-backend/internal/entity"
)

func TestSplitShortTextSingleChunk(t *testing.T) {
	s := NewSplitter(900, 150)

	chunks := s.Split([]entity.DocumentChunk{
		{Text: "A short note about mitochondria.", Source: "bio.txt"},
	})

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "A short note about mitochondria." {
		t.Errorf("short text must pass through unchanged, got %q", chunks[0].Text)
	}
	if chunks[0].Source != "bio.txt" {
		t.Errorf("source not propagated, got %q", chunks[0].Source)
	}
}

func TestSplitBlankTextProducesNothing(t *testing.T) {
	s := NewSplitter(900, 150)

	chunks := s.Split([]entity.DocumentChunk{
		{Text: "   \n\t  ", Source: "blank.txt"},
	})

	if len(chunks) != 0 {
		t.Fatalf("expected no chunks from whitespace-only text, got %d", len(chunks))
	}
}

func TestSplitRespectsChunkSize(t *testing.T) {
	s := NewSplitter(100, 20)
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 30)

	chunks := s.Split([]entity.DocumentChunk{{Text: text, Source: "fox.txt"}})

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if n := len([]rune(c.Text)); n > 100 {
			t.Errorf("chunk %d exceeds size limit: %d runes", i, n)
		}
	}
}

func TestSplitConsecutiveChunksOverlap(t *testing.T) {
	s := NewSplitter(100, 20)
	text := strings.Repeat("alpha beta gamma delta epsilon zeta eta theta. ", 20)

	chunks := s.Split([]entity.DocumentChunk{{Text: text, Source: "greek.txt"}})

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1].Text)
		tail := string(prev[len(prev)-20:])
		if !strings.HasPrefix(chunks[i].Text, tail) {
			t.Errorf("chunk %d does not start with the previous chunk's 20-rune tail", i)
		}
	}
}

func TestSplitPrefersParagraphBoundary(t *testing.T) {
	s := NewSplitter(100, 0)
	para := strings.Repeat("word ", 16) // 80 runes
	text := para + "\n\n" + para + "\n\n" + para

	chunks := s.Split([]entity.DocumentChunk{{Text: text, Source: "para.txt"}})

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	if !strings.HasSuffix(chunks[0].Text, "\n\n") {
		t.Errorf("first chunk should end at the paragraph break, got %q", chunks[0].Text[len(chunks[0].Text)-10:])
	}
}

func TestSplitDeterministic(t *testing.T) {
	s := NewSplitter(120, 30)
	units := []entity.DocumentChunk{
		{Text: strings.Repeat("Photosynthesis converts light into chemical energy. ", 15), Source: "bio.txt"},
	}

	first := s.Split(units)
	second := s.Split(units)

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ between runs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestSplitCoversFullText(t *testing.T) {
	s := NewSplitter(100, 20)
	text := strings.Repeat("segment ", 100)

	chunks := s.Split([]entity.DocumentChunk{{Text: text, Source: "cover.txt"}})

	// The last chunk must end exactly where the text ends.
	last := chunks[len(chunks)-1].Text
	if !strings.HasSuffix(text, last) {
		t.Error("last chunk does not terminate the original text")
	}
}

func TestNewSplitterGuardsBadArguments(t *testing.T) {
	tests := []struct {
		name      string
		chunkSize int
		overlap   int
	}{
		{"zero size", 0, 10},
		{"negative overlap", 100, -5},
		{"overlap at size", 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSplitter(tt.chunkSize, tt.overlap)
			text := strings.Repeat("steady progress every step. ", 200)
			chunks := s.Split([]entity.DocumentChunk{{Text: text, Source: "guard.txt"}})
			if len(chunks) == 0 {
				t.Fatal("splitter with defaulted arguments produced no chunks")
			}
		})
	}
}
