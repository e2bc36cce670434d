package contract

import (
	"context"
	"time"

	"ai-salesagent-be/internal/entity"
	"ai-salesagent-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SessionRepository interface {
	// Create returns ErrDuplicate when an open session already exists for the
	// (lead, demo, channel) triple.
	Create(ctx context.Context, session *entity.ConversationSession) error
	End(ctx context.Context, id uuid.UUID, endedAt time.Time) error
	FindOpen(ctx context.Context, leadId, demoId uuid.UUID, channel entity.Channel) (*entity.ConversationSession, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ConversationSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
