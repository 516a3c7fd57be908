package entity

import "time"

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// DocumentChunk is a span of extracted text tagged with the file it came
// from. Chunks are immutable once produced by the loader/chunker.
type DocumentChunk struct {
	Text   string
	Source string
}

// ScoredChunk is a chunk returned from a similarity search together with
// its score (higher is more similar).
type ScoredChunk struct {
	DocumentChunk
	Score float64
}

// ConversationTurn is one (role, text) pair of a session's history.
// Insertion order is meaningful: prior turns are replayed into the prompt.
type ConversationTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Session binds one vector collection to one ongoing conversation.
// The collection is immutable after creation; the history only grows.
type Session struct {
	ID         string
	Collection string
	ChunkCount int
	CreatedAt  time.Time
	History    []ConversationTurn
}

// FileData is an uploaded file's name and raw content, handed from the
// HTTP layer to the indexing pipeline.
type FileData struct {
	Filename string
	Content  []byte
}
