package model

import (
	"time"

	"github.com/google/uuid"
)

type KnowledgeBase struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DemoId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:text;not null"`
	Type      string    `gorm:"type:varchar(16);not null;default:'general'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (KnowledgeBase) TableName() string {
	return "knowledge_bases"
}
