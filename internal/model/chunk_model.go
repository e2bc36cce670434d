package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type Chunk struct {
	Id              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId      uuid.UUID       `gorm:"type:uuid;not null;index"`
	KnowledgeBaseId uuid.UUID       `gorm:"type:uuid;not null;index"`
	Content         string          `gorm:"type:text;not null"`
	Embedding       pgvector.Vector `gorm:"type:vector(768)"` // embedding model dimensionality; never mix models
	ChunkIndex      int             `gorm:"not null;default:0"`
	CreatedAt       time.Time       `gorm:"autoCreateTime"`
}

func (Chunk) TableName() string {
	return "chunks"
}
