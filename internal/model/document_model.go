package model

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	KnowledgeBaseId uuid.UUID `gorm:"type:uuid;not null;index"`
	Filename        string    `gorm:"type:text;not null"`
	Text            string    `gorm:"type:text"`
	ChunkCount      int       `gorm:"not null;default:0"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}

func (Document) TableName() string {
	return "documents"
}
