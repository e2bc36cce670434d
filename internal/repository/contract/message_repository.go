package contract

import (
	"context"

	"ai-salesagent-be/internal/entity"
	"ai-salesagent-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.ConversationMessage) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ConversationMessage, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindByLead returns user/assistant messages across every session of the
	// lead, ascending by creation time.
	FindByLead(ctx context.Context, leadId uuid.UUID) ([]*entity.ConversationMessage, error)

	// SumTokenCountsByDemo totals token_count over all messages belonging to
	// sessions of the demo.
	SumTokenCountsByDemo(ctx context.Context, demoId uuid.UUID) (int64, error)
}
