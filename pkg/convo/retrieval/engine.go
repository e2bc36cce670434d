package retrieval

import (
	"context"
	"strings"

	"ai-salesagent-be/internal/pkg/logger"
	"ai-salesagent-be/internal/repository/contract"
	"ai-salesagent-be/pkg/embedding"

	"github.com/google/uuid"
)

const (
	contextHeader = "--- RELEVANT KNOWLEDGE ---"
	contextFooter = "--- END KNOWLEDGE ---"
)

// Engine embeds a query and pulls the nearest chunks from one knowledge base.
// Retrieval is best-effort: any failure degrades to an empty context string so
// the conversation continues without augmentation.
type Engine struct {
	chunkRepo contract.ChunkRepository
	embedder  embedding.Provider
	log       logger.ILogger
	limit     int
	threshold float64
}

func NewEngine(chunkRepo contract.ChunkRepository, embedder embedding.Provider, log logger.ILogger, limit int, threshold float64) *Engine {
	if limit <= 0 {
		limit = 5
	}
	if threshold <= 0 {
		threshold = 0.5
	}
	return &Engine{
		chunkRepo: chunkRepo,
		embedder:  embedder,
		log:       log,
		limit:     limit,
		threshold: threshold,
	}
}

// Retrieve returns the concatenated text of matching chunks wrapped in the
// knowledge delimiter, or "" when the query is blank, nothing matches, or any
// step fails.
func (e *Engine) Retrieve(ctx context.Context, kbId uuid.UUID, query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return ""
	}

	vectors, err := e.embedder.Embed(ctx, []string{query})
	if err != nil || len(vectors) != 1 {
		e.log.Warn("retrieval", "query embedding failed, continuing without context", map[string]interface{}{
			"kb_id": kbId.String(),
			"error": errString(err),
		})
		return ""
	}

	hits, err := e.chunkRepo.SearchSimilarWithScore(ctx, kbId, vectors[0], e.limit, e.threshold)
	if err != nil {
		e.log.Warn("retrieval", "similarity search failed, continuing without context", map[string]interface{}{
			"kb_id": kbId.String(),
			"error": err.Error(),
		})
		return ""
	}
	if len(hits) == 0 {
		return ""
	}

	parts := make([]string, 0, len(hits))
	for _, hit := range hits {
		parts = append(parts, hit.Chunk.Content)
	}

	var b strings.Builder
	b.WriteString(contextHeader)
	b.WriteString("\n")
	b.WriteString(strings.Join(parts, "\n\n"))
	b.WriteString("\n")
	b.WriteString(contextFooter)
	return b.String()
}

func errString(err error) string {
	if err == nil {
		return "embedding count mismatch"
	}
	return err.Error()
}
