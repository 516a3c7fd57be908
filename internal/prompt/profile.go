// Package prompt assembles model-ready prompts from retrieved context,
// conversation history and an answer-format profile.
package prompt

// Answer-format profile names, as sent by clients in answer_type.
const (
	ProfileShort    = "Short (2 Marks)"
	ProfileMedium   = "Medium (5 Marks)"
	ProfileDetailed = "Detailed (10 Marks)"
	ProfileViva     = "Viva/Interview"
)

// FallbackAnswer is the fixed phrase the model must return when the
// answer is absent from the provided context.
const FallbackAnswer = `I don't know based on the provided material.`

// Profile maps a verbosity selection to an instruction template and a
// model temperature. Stateless; selected per request.
type Profile struct {
	Name        string
	Instruction string
	Temperature float32
}

var profiles = map[string]Profile{
	ProfileShort: {
		Name: ProfileShort,
		Instruction: `Provide a brief, concise answer (2-3 sentences).
Focus on the key point only.
Suitable for 2-mark questions.`,
		Temperature: 0.2,
	},
	ProfileMedium: {
		Name: ProfileMedium,
		Instruction: `Provide a moderate length answer (1 paragraph, 5-7 sentences).
Include main points with brief explanations.
Suitable for 5-mark questions.`,
		Temperature: 0.2,
	},
	ProfileDetailed: {
		Name: ProfileDetailed,
		Instruction: `Provide a comprehensive, detailed answer (2-3 paragraphs).
Include definitions, explanations, examples, and important points.
Use bullet points or numbered lists where appropriate.
Suitable for 10-mark questions.`,
		Temperature: 0.2,
	},
	ProfileViva: {
		Name: ProfileViva,
		Instruction: `Provide a SHORT, conversational answer (3-5 sentences maximum).
Answer naturally as if speaking in an interview - be direct and to the point.
Include ONE practical example or real-world application if relevant.
Keep it brief and confident - viva answers should be spoken in 30-45 seconds.
Do NOT write lengthy explanations.`,
		Temperature: 0.1,
	},
}

// ProfileFor resolves an answer_type string; unknown values fall back to
// the Short profile.
func ProfileFor(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	return profiles[ProfileShort]
}
