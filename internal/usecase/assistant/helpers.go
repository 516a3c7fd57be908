package assistant

import (
	"strings"

	"github.com/studyassist/rag-backend/internal/entity"
)

// renderTranscript formats the conversation history as plain text, one
// labeled block per turn.
func renderTranscript(history []entity.ConversationTurn) string {
	if len(history) == 0 {
		return "No conversation recorded."
	}

	var sb strings.Builder
	for i, turn := range history {
		if i > 0 {
			sb.WriteString("\n")
		}
		switch turn.Role {
		case entity.RoleAssistant:
			sb.WriteString("Assistant: ")
		default:
			sb.WriteString("User: ")
		}
		sb.WriteString(turn.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}
