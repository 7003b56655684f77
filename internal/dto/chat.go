package dto

type CreateSessionResponse struct {
	SessionID string   `json:"session_id"`
	Token     string   `json:"token"`
	Warnings  []string `json:"warnings,omitempty"`
}

type SendMessageRequest struct {
	Message string `json:"message"`
}

type SelectConversationRequest struct {
	Name string `json:"name"`
}

type ReplyResponse struct {
	Conversation string   `json:"conversation"`
	Answer       string   `json:"answer"`
	Keywords     []string `json:"keywords"`
	Outcome      string   `json:"outcome"`
}

type TurnResponse struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type ConversationSummary struct {
	Name      string `json:"name"`
	Turns     int    `json:"turns"`
	UpdatedAt string `json:"updated_at"`
}

type ConversationListResponse struct {
	Conversations []ConversationSummary `json:"conversations"`
	Selected      string                `json:"selected"`
}

type ConversationResponse struct {
	Name  string         `json:"name"`
	Turns []TurnResponse `json:"turns"`
}
