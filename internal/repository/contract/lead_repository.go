package contract

import (
	"context"
	"time"

	"ai-salesagent-be/internal/entity"
	"ai-salesagent-be/internal/repository/specification"

	"github.com/google/uuid"
)

type LeadRepository interface {
	// Create returns ErrDuplicate when the (demo, identifier) pair already
	// exists, so callers can retry as a fetch.
	Create(ctx context.Context, lead *entity.Lead) error
	Touch(ctx context.Context, id uuid.UUID, seenAt time.Time) error
	FindByIdentifier(ctx context.Context, demoId uuid.UUID, identifier string) (*entity.Lead, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Lead, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Lead, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
