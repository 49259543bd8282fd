package dtos

import "encoding/json"

// ChatTurn is one role/content pair of a conversation history. Roles are
// the client's "user"/"assistant" labels.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Message             string     `json:"message" binding:"required"`
	Mode                string     `json:"mode" binding:"required"`
	ResumeID            *uint      `json:"resume_id"`
	ApplicationID       *uint      `json:"application_id"`
	ConversationHistory []ChatTurn `json:"conversation_history"`
}

type CritiqueRequest struct {
	ResumeID uint `json:"resume_id" binding:"required"`
}

type StartInterviewRequest struct {
	ResumeID      uint  `json:"resume_id" binding:"required"`
	ApplicationID *uint `json:"application_id"`
}

type RateAnswerRequest struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
	ResumeID *uint  `json:"resume_id"`
}

type ChatSessionCreateRequest struct {
	Title         string `json:"title"`
	Mode          string `json:"mode" binding:"required"`
	ResumeID      *uint  `json:"resume_id"`
	ApplicationID *uint  `json:"application_id"`
}

// ChatSessionUpdateRequest overwrites messages wholesale; the server
// never appends to a transcript incrementally.
type ChatSessionUpdateRequest struct {
	Title    *string         `json:"title"`
	Messages json.RawMessage `json:"messages"`
}
