package prompt

import (
	"reflect"
	"strings"
	"testing"

	"github.com/studyassist/rag-backend/internal/entity"
	"github.com/studyassist/rag-backend/internal/llm"
)

func TestComposeMessageOrder(t *testing.T) {
	history := []entity.ConversationTurn{
		{Role: entity.RoleUser, Content: "What is osmosis?"},
		{Role: entity.RoleAssistant, Content: "Movement of water across a membrane."},
	}
	chunks := []entity.ScoredChunk{
		{DocumentChunk: entity.DocumentChunk{Text: "Osmosis is passive transport.", Source: "bio.txt"}},
	}

	messages := Compose("Give an example.", history, chunks, ProfileFor(ProfileShort))

	if len(messages) != 4 {
		t.Fatalf("expected system + 2 history + question = 4 messages, got %d", len(messages))
	}
	if messages[0].Role != llm.RoleSystem {
		t.Errorf("first message must be the system prompt, got role %q", messages[0].Role)
	}
	if messages[1].Role != llm.RoleUser || messages[2].Role != llm.RoleAssistant {
		t.Error("history turns must keep their original order and roles")
	}
	if messages[3].Role != llm.RoleUser || messages[3].Content != "Give an example." {
		t.Error("question must be the final user message")
	}
}

func TestComposeSystemPromptContents(t *testing.T) {
	chunks := []entity.ScoredChunk{
		{DocumentChunk: entity.DocumentChunk{Text: "First passage."}},
		{DocumentChunk: entity.DocumentChunk{Text: "Second passage."}},
	}

	messages := Compose("q", nil, chunks, ProfileFor(ProfileDetailed))
	system := messages[0].Content

	if !strings.Contains(system, FallbackAnswer) {
		t.Error("system prompt must quote the fallback phrase")
	}
	if !strings.Contains(system, "First passage.\n\nSecond passage.") {
		t.Error("context passages must be joined with a blank line")
	}
	if !strings.Contains(system, ProfileFor(ProfileDetailed).Instruction) {
		t.Error("system prompt must embed the profile instruction")
	}
}

func TestComposeUnknownHistoryRole(t *testing.T) {
	history := []entity.ConversationTurn{
		{Role: entity.RoleUser, Content: "question"},
		{Role: entity.Role("tool"), Content: "tool output"},
	}

	messages := Compose("q", history, nil, ProfileFor(ProfileShort))

	if messages[1].Role != llm.RoleUser {
		t.Errorf("user turn must stay user, got %q", messages[1].Role)
	}
	if messages[2].Role != llm.RoleAssistant {
		t.Errorf("unrecognized roles must replay as assistant, got %q", messages[2].Role)
	}
}

func TestComposeDeterministic(t *testing.T) {
	history := []entity.ConversationTurn{{Role: entity.RoleUser, Content: "hi"}}
	chunks := []entity.ScoredChunk{{DocumentChunk: entity.DocumentChunk{Text: "ctx"}}}

	a := Compose("question", history, chunks, ProfileFor(ProfileViva))
	b := Compose("question", history, chunks, ProfileFor(ProfileViva))

	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs must produce byte-identical prompts")
	}
}

func TestComposeEmptyContext(t *testing.T) {
	messages := Compose("q", nil, nil, ProfileFor(ProfileShort))

	if len(messages) != 2 {
		t.Fatalf("expected system + question, got %d messages", len(messages))
	}
	if !strings.Contains(messages[0].Content, "Context:\n") {
		t.Error("system prompt must still carry the context section")
	}
}

func TestProfileTemperatures(t *testing.T) {
	tests := []struct {
		name string
		want float32
	}{
		{ProfileShort, 0.2},
		{ProfileMedium, 0.2},
		{ProfileDetailed, 0.2},
		{ProfileViva, 0.1},
	}

	for _, tt := range tests {
		if got := ProfileFor(tt.name).Temperature; got != tt.want {
			t.Errorf("%s: temperature = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestProfileForUnknownFallsBackToShort(t *testing.T) {
	p := ProfileFor("Essay (50 Marks)")

	if p.Name != ProfileShort {
		t.Errorf("unknown answer_type must resolve to the Short profile, got %q", p.Name)
	}
}
