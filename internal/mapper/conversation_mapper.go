package mapper

import (
	"ai-salesagent-be/internal/entity"
	"ai-salesagent-be/internal/model"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) LeadToEntity(l *model.Lead) *entity.Lead {
	return &entity.Lead{
		Id:             l.Id,
		DemoId:         l.DemoId,
		Identifier:     l.Identifier,
		IdentifierType: entity.IdentifierType(l.IdentifierType),
		LastSeenAt:     l.LastSeenAt,
		CreatedAt:      l.CreatedAt,
	}
}

func (m *ConversationMapper) LeadToModel(l *entity.Lead) *model.Lead {
	return &model.Lead{
		Id:             l.Id,
		DemoId:         l.DemoId,
		Identifier:     l.Identifier,
		IdentifierType: string(l.IdentifierType),
		LastSeenAt:     l.LastSeenAt,
		CreatedAt:      l.CreatedAt,
	}
}

func (m *ConversationMapper) SessionToEntity(s *model.ConversationSession) *entity.ConversationSession {
	return &entity.ConversationSession{
		Id:        s.Id,
		LeadId:    s.LeadId,
		DemoId:    s.DemoId,
		Channel:   entity.Channel(s.Channel),
		CreatedAt: s.CreatedAt,
		EndedAt:   s.EndedAt,
	}
}

func (m *ConversationMapper) SessionToModel(s *entity.ConversationSession) *model.ConversationSession {
	return &model.ConversationSession{
		Id:        s.Id,
		LeadId:    s.LeadId,
		DemoId:    s.DemoId,
		Channel:   string(s.Channel),
		CreatedAt: s.CreatedAt,
		EndedAt:   s.EndedAt,
	}
}

func (m *ConversationMapper) MessageToEntity(msg *model.ConversationMessage) *entity.ConversationMessage {
	return &entity.ConversationMessage{
		Id:         msg.Id,
		SessionId:  msg.SessionId,
		Role:       entity.Role(msg.Role),
		Content:    msg.Content,
		TokenCount: msg.TokenCount,
		CreatedAt:  msg.CreatedAt,
	}
}

func (m *ConversationMapper) MessageToModel(msg *entity.ConversationMessage) *model.ConversationMessage {
	return &model.ConversationMessage{
		Id:         msg.Id,
		SessionId:  msg.SessionId,
		Role:       string(msg.Role),
		Content:    msg.Content,
		TokenCount: msg.TokenCount,
		CreatedAt:  msg.CreatedAt,
	}
}
