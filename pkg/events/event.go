package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeLeadCreated           = "LEAD_CREATED"
	TypeConversationCompleted = "CONVERSATION_COMPLETED"
	TypeDocumentIngested      = "DOCUMENT_INGESTED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "LEAD_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewLeadCreated fires when identity resolution mints a fresh lead.
func NewLeadCreated(demoId, leadId, ownerId uuid.UUID, identifier, channel string) Event {
	return BaseEvent{
		Type: TypeLeadCreated,
		Data: map[string]interface{}{
			"demo_id":    demoId.String(),
			"lead_id":    leadId.String(),
			"owner_id":   ownerId.String(),
			"identifier": identifier,
			"channel":    channel,
		},
		OccurredAt: time.Now().UTC(),
	}
}

// NewConversationCompleted fires after an assistant turn is persisted.
func NewConversationCompleted(demoId, sessionId, ownerId uuid.UUID, channel string, tokenCount int) Event {
	return BaseEvent{
		Type: TypeConversationCompleted,
		Data: map[string]interface{}{
			"demo_id":     demoId.String(),
			"session_id":  sessionId.String(),
			"owner_id":    ownerId.String(),
			"channel":     channel,
			"token_count": tokenCount,
		},
		OccurredAt: time.Now().UTC(),
	}
}

// NewDocumentIngested fires when the async ingestion worker finishes a file.
func NewDocumentIngested(demoId, documentId, ownerId uuid.UUID, filename string, chunkCount int) Event {
	return BaseEvent{
		Type: TypeDocumentIngested,
		Data: map[string]interface{}{
			"demo_id":     demoId.String(),
			"document_id": documentId.String(),
			"owner_id":    ownerId.String(),
			"filename":    filename,
			"chunk_count": chunkCount,
		},
		OccurredAt: time.Now().UTC(),
	}
}
