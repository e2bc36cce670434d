package history

import (
	"context"

	"ai-salesagent-be/internal/entity"
	"ai-salesagent-be/internal/repository/contract"

	"github.com/google/uuid"
)

// Loader assembles the cross-channel transcript for a lead. Every session the
// lead has had with the demo contributes, regardless of channel, so the agent
// remembers an SMS exchange when the lead shows up on web chat.
type Loader struct {
	messageRepo contract.MessageRepository
	maxMessages int
}

func NewLoader(messageRepo contract.MessageRepository, maxMessages int) *Loader {
	return &Loader{messageRepo: messageRepo, maxMessages: maxMessages}
}

// Load returns the lead's user/assistant history in chronological order,
// truncated to the most recent maxMessages entries. Truncation drops from the
// front; the tail is what the model needs.
func (l *Loader) Load(ctx context.Context, leadId uuid.UUID) ([]*entity.ConversationMessage, error) {
	messages, err := l.messageRepo.FindByLead(ctx, leadId)
	if err != nil {
		return nil, err
	}
	return Tail(messages, l.maxMessages), nil
}

// Tail keeps the last max messages, preserving order. max <= 0 means no cap.
func Tail(messages []*entity.ConversationMessage, max int) []*entity.ConversationMessage {
	if max <= 0 || len(messages) <= max {
		return messages
	}
	return messages[len(messages)-max:]
}
