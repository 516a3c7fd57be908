package entity

type UploadResponse struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type ChatRequest struct {
	SessionID   string             `json:"session_id"`
	Question    string             `json:"question"`
	ChatHistory []ConversationTurn `json:"chat_history"`
	AnswerType  string             `json:"answer_type"`
}

type ChatResponse struct {
	Answer    string `json:"answer"`
	SessionID string `json:"session_id"`
}

type DeleteSessionResponse struct {
	Message string `json:"message"`
}

type ListSessionsResponse struct {
	Sessions []string `json:"sessions"`
}

type LivenessResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
