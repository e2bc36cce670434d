package mapper

import (
	"ai-salesagent-be/internal/entity"
	"ai-salesagent-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type KnowledgeMapper struct{}

func NewKnowledgeMapper() *KnowledgeMapper {
	return &KnowledgeMapper{}
}

func (m *KnowledgeMapper) BaseToEntity(kb *model.KnowledgeBase) *entity.KnowledgeBase {
	return &entity.KnowledgeBase{
		Id:        kb.Id,
		DemoId:    kb.DemoId,
		Name:      kb.Name,
		Type:      entity.KnowledgeBaseType(kb.Type),
		CreatedAt: kb.CreatedAt,
	}
}

func (m *KnowledgeMapper) BaseToModel(kb *entity.KnowledgeBase) *model.KnowledgeBase {
	return &model.KnowledgeBase{
		Id:        kb.Id,
		DemoId:    kb.DemoId,
		Name:      kb.Name,
		Type:      string(kb.Type),
		CreatedAt: kb.CreatedAt,
	}
}

func (m *KnowledgeMapper) DocumentToEntity(d *model.Document) *entity.Document {
	return &entity.Document{
		Id:              d.Id,
		KnowledgeBaseId: d.KnowledgeBaseId,
		Filename:        d.Filename,
		Text:            d.Text,
		ChunkCount:      d.ChunkCount,
		CreatedAt:       d.CreatedAt,
	}
}

func (m *KnowledgeMapper) DocumentToModel(d *entity.Document) *model.Document {
	return &model.Document{
		Id:              d.Id,
		KnowledgeBaseId: d.KnowledgeBaseId,
		Filename:        d.Filename,
		Text:            d.Text,
		ChunkCount:      d.ChunkCount,
		CreatedAt:       d.CreatedAt,
	}
}

func (m *KnowledgeMapper) ChunkToEntity(c *model.Chunk) *entity.Chunk {
	return &entity.Chunk{
		Id:              c.Id,
		DocumentId:      c.DocumentId,
		KnowledgeBaseId: c.KnowledgeBaseId,
		Content:         c.Content,
		Embedding:       c.Embedding.Slice(),
		ChunkIndex:      c.ChunkIndex,
		CreatedAt:       c.CreatedAt,
	}
}

func (m *KnowledgeMapper) ChunkToModel(c *entity.Chunk) *model.Chunk {
	return &model.Chunk{
		Id:              c.Id,
		DocumentId:      c.DocumentId,
		KnowledgeBaseId: c.KnowledgeBaseId,
		Content:         c.Content,
		Embedding:       pgvector.NewVector(c.Embedding),
		ChunkIndex:      c.ChunkIndex,
		CreatedAt:       c.CreatedAt,
	}
}
