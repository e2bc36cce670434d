package mapper

import (
	"encoding/json"
	"time"

	"ai-salesagent-be/internal/entity"
	"ai-salesagent-be/internal/model"

	"gorm.io/datatypes"
)

type DemoMapper struct{}

func NewDemoMapper() *DemoMapper {
	return &DemoMapper{}
}

func (m *DemoMapper) ToEntity(d *model.Demo) *entity.Demo {
	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}
	return &entity.Demo{
		Id:              d.Id,
		OwnerId:         d.OwnerId,
		CompanyName:     d.CompanyName,
		Industry:        d.Industry,
		Products:        decodeStringList(d.Products),
		Offers:          decodeStringList(d.Offers),
		Qualification:   d.Qualification,
		MissionProfile:  entity.MissionProfile(d.MissionProfile),
		SystemPrompt:    d.SystemPrompt,
		Model:           d.Model,
		Channel:         entity.Channel(d.Channel),
		Status:          entity.DemoStatus(d.Status),
		ExpiresAt:       d.ExpiresAt,
		PhoneNumber:     d.PhoneNumber,
		ShortCode:       d.ShortCode,
		KnowledgeBaseId: d.KnowledgeBaseId,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *DemoMapper) ToModel(d *entity.Demo) *model.Demo {
	out := &model.Demo{
		Id:              d.Id,
		OwnerId:         d.OwnerId,
		CompanyName:     d.CompanyName,
		Industry:        d.Industry,
		Products:        encodeStringList(d.Products),
		Offers:          encodeStringList(d.Offers),
		Qualification:   d.Qualification,
		MissionProfile:  string(d.MissionProfile),
		SystemPrompt:    d.SystemPrompt,
		Model:           d.Model,
		Channel:         string(d.Channel),
		Status:          string(d.Status),
		ExpiresAt:       d.ExpiresAt,
		PhoneNumber:     d.PhoneNumber,
		ShortCode:       d.ShortCode,
		KnowledgeBaseId: d.KnowledgeBaseId,
		CreatedAt:       d.CreatedAt,
	}
	if d.UpdatedAt != nil {
		out.UpdatedAt = *d.UpdatedAt
	}
	return out
}

func decodeStringList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

func encodeStringList(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(raw)
}
