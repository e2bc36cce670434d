package ingest

import (
	"context"
	"fmt"

	"ai-salesagent-be/internal/pkg/apperrors"
	"ai-salesagent-be/pkg/embedding"
)

// Result carries everything ingestion produced for one file, ready for
// persistence by the caller.
type Result struct {
	Text       string
	Chunks     []string
	Embeddings [][]float32
}

// Pipeline turns a raw upload into embedded chunks. Persistence is the
// caller's job so that partial failures can be rolled back at the Document
// level.
type Pipeline struct {
	embedder      embedding.Provider
	sizeTokens    int
	overlapTokens int
}

func NewPipeline(embedder embedding.Provider, sizeTokens, overlapTokens int) *Pipeline {
	return &Pipeline{
		embedder:      embedder,
		sizeTokens:    sizeTokens,
		overlapTokens: overlapTokens,
	}
}

func (p *Pipeline) Ingest(ctx context.Context, raw []byte, filename string) (*Result, error) {
	text, err := ExtractText(raw, filename)
	if err != nil {
		return nil, err
	}

	chunks := ChunkText(text, p.sizeTokens, p.overlapTokens)
	if len(chunks) == 0 {
		return nil, apperrors.ErrEmptyContent
	}

	embeddings, err := p.embedder.Embed(ctx, chunks)
	if err != nil {
		return nil, err
	}
	if len(embeddings) != len(chunks) {
		return nil, fmt.Errorf("%w: %d chunks, %d embeddings",
			apperrors.ErrEmbeddingCountMismatch, len(chunks), len(embeddings))
	}

	return &Result{Text: text, Chunks: chunks, Embeddings: embeddings}, nil
}
