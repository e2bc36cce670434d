package entity

import (
	"time"

	"github.com/google/uuid"
)

// Lead is a durable contact identity scoped to one demo. Created on first
// contact, touched on every subsequent one, never deleted by the runtime.
type Lead struct {
	Id             uuid.UUID
	DemoId         uuid.UUID
	Identifier     string
	IdentifierType IdentifierType
	LastSeenAt     time.Time
	CreatedAt      time.Time
}
