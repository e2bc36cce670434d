package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Demo struct {
	Id              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerId         uuid.UUID  `gorm:"type:uuid;not null;index"`
	CompanyName     string     `gorm:"type:text;not null"`
	Industry        string     `gorm:"type:text"`
	Products        datatypes.JSON `gorm:"type:jsonb"`
	Offers          datatypes.JSON `gorm:"type:jsonb"`
	Qualification   string     `gorm:"type:text"`
	MissionProfile  string     `gorm:"type:varchar(32)"`
	SystemPrompt    string     `gorm:"type:text"`
	Model           string     `gorm:"type:varchar(64)"`
	Channel         string     `gorm:"type:varchar(16);not null;default:'web'"`
	Status          string     `gorm:"type:varchar(16);not null;default:'draft';index"`
	ExpiresAt       *time.Time
	PhoneNumber     string     `gorm:"type:varchar(32);uniqueIndex:idx_demos_phone,where:phone_number <> ''"`
	ShortCode       string     `gorm:"type:varchar(32);uniqueIndex:idx_demos_short_code,where:short_code <> ''"`
	KnowledgeBaseId *uuid.UUID `gorm:"type:uuid"`
	CreatedAt       time.Time  `gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime"`
}

func (Demo) TableName() string {
	return "demos"
}
