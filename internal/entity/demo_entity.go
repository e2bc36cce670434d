package entity

import (
	"time"

	"github.com/google/uuid"
)

// Demo is one configured agent. The builder owns mutation; the runtime reads
// it, except for PhoneNumber/ShortCode which are written once at activation.
type Demo struct {
	Id              uuid.UUID
	OwnerId         uuid.UUID
	CompanyName     string
	Industry        string
	Products        []string
	Offers          []string
	Qualification   string
	MissionProfile  MissionProfile
	SystemPrompt    string // pre-built prompt; overrides the mission template when set
	Model           string
	Channel         Channel
	Status          DemoStatus
	ExpiresAt       *time.Time
	PhoneNumber     string
	ShortCode       string
	KnowledgeBaseId *uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

// Active reports whether the demo may serve conversations at t.
func (d *Demo) Active(t time.Time) bool {
	if d.Status != DemoStatusActive {
		return false
	}
	if d.ExpiresAt != nil && !d.ExpiresAt.After(t) {
		return false
	}
	return true
}
