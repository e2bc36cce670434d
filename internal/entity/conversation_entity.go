package entity

import (
	"time"

	"github.com/google/uuid"
)

// ConversationSession is one continuous thread for a lead on one channel.
// At most one open session (EndedAt nil) exists per (lead, demo, channel).
type ConversationSession struct {
	Id        uuid.UUID
	LeadId    uuid.UUID
	DemoId    uuid.UUID
	Channel   Channel
	CreatedAt time.Time
	EndedAt   *time.Time
}

// ConversationMessage is a single immutable turn inside a session.
type ConversationMessage struct {
	Id         uuid.UUID
	SessionId  uuid.UUID
	Role       Role
	Content    string
	TokenCount int
	CreatedAt  time.Time
}
