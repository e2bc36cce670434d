package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendChatRequest struct {
	DemoId     uuid.UUID `json:"demo_id" validate:"required"`
	Identifier string    `json:"identifier" validate:"required,max=320"`
	Message    string    `json:"message" validate:"required,max=4000"`
}

type SendChatResponse struct {
	SessionId  uuid.UUID `json:"session_id"`
	LeadId     uuid.UUID `json:"lead_id"`
	Reply      string    `json:"reply"`
	TokenCount int       `json:"token_count"`
}

// StreamEvent is one SSE frame on the web chat stream. Done marks the
// sentinel frame; Error/ErrorType carry a terminal failure the client can
// branch on.
type StreamEvent struct {
	Fragment  string `json:"fragment,omitempty"`
	Done      bool   `json:"done,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorType string `json:"error_type,omitempty"`
}

type TranscriptMessage struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Channel   string    `json:"channel"`
	CreatedAt time.Time `json:"created_at"`
}

type TranscriptResponse struct {
	LeadId   uuid.UUID           `json:"lead_id"`
	Messages []TranscriptMessage `json:"messages"`
}
