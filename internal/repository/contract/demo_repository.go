package contract

import (
	"context"

	"ai-salesagent-be/internal/entity"
	"ai-salesagent-be/internal/repository/specification"
)

type DemoRepository interface {
	Create(ctx context.Context, demo *entity.Demo) error
	Update(ctx context.Context, demo *entity.Demo) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Demo, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Demo, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
