package prompt

import (
	"fmt"
	"strings"

	"github.com/studyassist/rag-backend/internal/entity"
	"github.com/studyassist/rag-backend/internal/llm"
)

const systemTemplate = `You are a helpful study assistant.
ONLY use the provided context to answer.
If the answer is not found, say:
"%s"

ANSWER FORMAT:
%s

Context:
%s`

// Compose builds the ordered prompt messages: system instruction with the
// retrieved context, prior conversation turns in original order, then the
// new question. Pure assembly; identical inputs yield identical output.
func Compose(question string, history []entity.ConversationTurn, chunks []entity.ScoredChunk, profile Profile) []llm.Message {
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}
	contextBlock := strings.Join(texts, "\n\n")

	system := fmt.Sprintf(systemTemplate, FallbackAnswer, profile.Instruction, contextBlock)

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: system})

	for _, turn := range history {
		// Only explicit user turns replay as user; anything else is
		// treated as model output.
		role := llm.RoleAssistant
		if turn.Role == entity.RoleUser {
			role = llm.RoleUser
		}
		messages = append(messages, llm.Message{Role: role, Content: turn.Content})
	}

	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: question})

	return messages
}
