package contract

import (
	"context"

	"ai-salesagent-be/internal/entity"
	"ai-salesagent-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.Chunk) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// SearchSimilarWithScore runs a cosine nearest-neighbor search scoped to
	// one knowledge base, dropping hits below threshold.
	SearchSimilarWithScore(ctx context.Context, kbId uuid.UUID, embedding []float32, limit int, threshold float64) ([]*entity.ScoredChunk, error)
}
