package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByDemoID filters rows belonging to a demo
type ByDemoID struct {
	DemoID uuid.UUID
}

func (s ByDemoID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("demo_id = ?", s.DemoID)
}

// ByLeadID filters rows belonging to a lead
type ByLeadID struct {
	LeadID uuid.UUID
}

func (s ByLeadID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("lead_id = ?", s.LeadID)
}

// BySessionIDs filters messages across a set of sessions
type BySessionIDs struct {
	SessionIDs []uuid.UUID
}

func (s BySessionIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id IN ?", s.SessionIDs)
}

// ByChannel filters by conversation channel
type ByChannel struct {
	Channel string
}

func (s ByChannel) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("channel = ?", s.Channel)
}

// OpenOnly keeps sessions with no end time
type OpenOnly struct{}

func (s OpenOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("ended_at IS NULL")
}

// RoleIn keeps messages whose role is in the given set
type RoleIn struct {
	Roles []string
}

func (s RoleIn) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("role IN ?", s.Roles)
}

// ByShortCode resolves a demo from a channel short code
type ByShortCode struct {
	ShortCode string
}

func (s ByShortCode) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("short_code = ?", s.ShortCode)
}

// ByPhoneNumber resolves a demo from its provisioned phone number
type ByPhoneNumber struct {
	PhoneNumber string
}

func (s ByPhoneNumber) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("phone_number = ?", s.PhoneNumber)
}
