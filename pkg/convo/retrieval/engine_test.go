package retrieval

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-salesagent-be/internal/entity"
	"ai-salesagent-be/internal/repository/specification"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type stubEmbedder struct {
	err error
}

func (s *stubEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{0.1, 0.2, 0.3}
	}
	return out, nil
}

type stubChunkRepo struct {
	hits []*entity.ScoredChunk
	err  error

	gotLimit     int
	gotThreshold float64
}

func (s *stubChunkRepo) CreateBulk(context.Context, []*entity.Chunk) error     { return nil }
func (s *stubChunkRepo) DeleteByDocumentId(context.Context, uuid.UUID) error   { return nil }
func (s *stubChunkRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.Chunk, error) {
	return nil, nil
}
func (s *stubChunkRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return 0, nil
}
func (s *stubChunkRepo) SearchSimilarWithScore(_ context.Context, _ uuid.UUID, _ []float32, limit int, threshold float64) ([]*entity.ScoredChunk, error) {
	s.gotLimit = limit
	s.gotThreshold = threshold
	return s.hits, s.err
}

func scored(content string, similarity float64) *entity.ScoredChunk {
	return &entity.ScoredChunk{
		Chunk:      &entity.Chunk{Id: uuid.New(), Content: content},
		Similarity: similarity,
	}
}

func TestRetrieveBlankQuery(t *testing.T) {
	engine := NewEngine(&stubChunkRepo{}, &stubEmbedder{}, nopLogger{}, 5, 0.5)
	if got := engine.Retrieve(context.Background(), uuid.New(), "   "); got != "" {
		t.Errorf("blank query should yield no context, got %q", got)
	}
}

func TestRetrieveWrapsHits(t *testing.T) {
	repo := &stubChunkRepo{hits: []*entity.ScoredChunk{
		scored("Refunds within 30 days.", 0.91),
		scored("Shipping is free over $50.", 0.78),
	}}
	engine := NewEngine(repo, &stubEmbedder{}, nopLogger{}, 5, 0.5)

	got := engine.Retrieve(context.Background(), uuid.New(), "what is your refund policy")
	if !strings.HasPrefix(got, contextHeader) {
		t.Errorf("context should open with the knowledge header, got %q", got)
	}
	if !strings.HasSuffix(got, contextFooter) {
		t.Errorf("context should close with the knowledge footer, got %q", got)
	}
	if !strings.Contains(got, "Refunds within 30 days.\n\nShipping is free over $50.") {
		t.Errorf("chunks should be joined by blank lines in rank order, got %q", got)
	}
	if repo.gotLimit != 5 || repo.gotThreshold != 0.5 {
		t.Errorf("search used limit=%d threshold=%v", repo.gotLimit, repo.gotThreshold)
	}
}

func TestRetrieveNoHits(t *testing.T) {
	engine := NewEngine(&stubChunkRepo{}, &stubEmbedder{}, nopLogger{}, 5, 0.5)
	if got := engine.Retrieve(context.Background(), uuid.New(), "anything"); got != "" {
		t.Errorf("no hits should yield no context, got %q", got)
	}
}

func TestRetrieveFailsOpen(t *testing.T) {
	tests := []struct {
		name   string
		engine *Engine
	}{
		{
			name:   "embedding failure",
			engine: NewEngine(&stubChunkRepo{}, &stubEmbedder{err: errors.New("provider down")}, nopLogger{}, 5, 0.5),
		},
		{
			name:   "search failure",
			engine: NewEngine(&stubChunkRepo{err: errors.New("db down")}, &stubEmbedder{}, nopLogger{}, 5, 0.5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.engine.Retrieve(context.Background(), uuid.New(), "hello"); got != "" {
				t.Errorf("failure should degrade to empty context, got %q", got)
			}
		})
	}
}

func TestNewEngineDefaults(t *testing.T) {
	repo := &stubChunkRepo{}
	engine := NewEngine(repo, &stubEmbedder{}, nopLogger{}, 0, 0)
	engine.Retrieve(context.Background(), uuid.New(), "hello")
	if repo.gotLimit != 5 {
		t.Errorf("default limit = %d, want 5", repo.gotLimit)
	}
	if repo.gotThreshold != 0.5 {
		t.Errorf("default threshold = %v, want 0.5", repo.gotThreshold)
	}
}
