package model

import (
	"time"

	"github.com/google/uuid"
)

// ConversationSession carries a partial unique index so the database itself
// enforces "at most one open session per (lead, demo, channel)".
type ConversationSession struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LeadId    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_sessions_open,where:ended_at IS NULL"`
	DemoId    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_sessions_open,where:ended_at IS NULL"`
	Channel   string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_sessions_open,where:ended_at IS NULL"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	EndedAt   *time.Time
}

func (ConversationSession) TableName() string {
	return "conversation_sessions"
}
