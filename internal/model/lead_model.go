package model

import (
	"time"

	"github.com/google/uuid"
)

type Lead struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DemoId         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_leads_demo_identifier"`
	Identifier     string    `gorm:"type:text;not null;uniqueIndex:idx_leads_demo_identifier"`
	IdentifierType string    `gorm:"type:varchar(16);not null"`
	LastSeenAt     time.Time `gorm:"not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (Lead) TableName() string {
	return "leads"
}
