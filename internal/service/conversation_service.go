package service

import (
	"context"
	"fmt"
	"time"

	"ai-salesagent-be/internal/config"
	"ai-salesagent-be/internal/dto"
	"ai-salesagent-be/internal/entity"
	"ai-salesagent-be/internal/pkg/apperrors"
	"ai-salesagent-be/internal/pkg/logger"
	"ai-salesagent-be/internal/repository/specification"
	"ai-salesagent-be/internal/repository/unitofwork"
	"ai-salesagent-be/pkg/convo/budget"
	"ai-salesagent-be/pkg/convo/history"
	"ai-salesagent-be/pkg/convo/identity"
	"ai-salesagent-be/pkg/convo/prompt"
	"ai-salesagent-be/pkg/convo/retrieval"
	"ai-salesagent-be/pkg/events"
	"ai-salesagent-be/pkg/llm"
	"ai-salesagent-be/pkg/ratelimit"

	"github.com/google/uuid"
)

// IEventPublisher lets the orchestrator announce domain events without
// depending on the concrete bus.
type IEventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Inbound is one channel-agnostic incoming message after adapter translation.
type Inbound struct {
	DemoId         uuid.UUID
	Identifier     string
	IdentifierType entity.IdentifierType
	Channel        entity.Channel
	Message        string
}

// Exchange is the persisted outcome of one completed conversation turn.
type Exchange struct {
	Lead       *entity.Lead
	Session    *entity.ConversationSession
	Reply      string
	TokenCount int
}

type IConversationService interface {
	// StreamChat runs the streaming path: each fragment is handed to emit as
	// it arrives, then the full assistant turn is persisted.
	StreamChat(ctx context.Context, in *Inbound, emit func(fragment string) error) (*Exchange, error)

	// SendChat runs the synchronous path used by SMS, voice, and email.
	SendChat(ctx context.Context, in *Inbound) (*Exchange, error)

	// FindDemoByPhoneNumber resolves the demo an inbound Twilio number maps
	// to. Returns nil when no active demo claims the number.
	FindDemoByPhoneNumber(ctx context.Context, phoneNumber string) (*entity.Demo, error)

	// FindDemoByShortCode resolves a demo from a web/email short code.
	FindDemoByShortCode(ctx context.Context, shortCode string) (*entity.Demo, error)

	// GetTranscript returns the full cross-channel history for a lead.
	GetTranscript(ctx context.Context, demoId uuid.UUID, identifier string, idType entity.IdentifierType) (*dto.TranscriptResponse, error)
}

type conversationService struct {
	uowFactory  unitofwork.RepositoryFactory
	resolver    *identity.Resolver
	histLoader  *history.Loader
	budgetTrack *budget.Tracker
	retriever   *retrieval.Engine
	llmProvider llm.Provider
	rateCounter ratelimit.Counter
	publisher   IEventPublisher
	log         logger.ILogger
	cfg         *config.Config
}

func NewConversationService(
	uowFactory unitofwork.RepositoryFactory,
	resolver *identity.Resolver,
	histLoader *history.Loader,
	budgetTrack *budget.Tracker,
	retriever *retrieval.Engine,
	llmProvider llm.Provider,
	rateCounter ratelimit.Counter,
	publisher IEventPublisher,
	log logger.ILogger,
	cfg *config.Config,
) IConversationService {
	return &conversationService{
		uowFactory:  uowFactory,
		resolver:    resolver,
		histLoader:  histLoader,
		budgetTrack: budgetTrack,
		retriever:   retriever,
		llmProvider: llmProvider,
		rateCounter: rateCounter,
		publisher:   publisher,
		log:         log,
		cfg:         cfg,
	}
}

// preparedExchange is everything assembled before the model is invoked.
type preparedExchange struct {
	demo       *entity.Demo
	resolution *identity.Resolution
	messages   []llm.Message
	options    []llm.Option
}

// prepare runs the steps both paths share: demo lookup, rate limit, budget,
// identity, user-message persistence, history, retrieval, prompt assembly.
func (s *conversationService) prepare(ctx context.Context, in *Inbound) (*preparedExchange, error) {
	if in.Message == "" || in.Identifier == "" {
		return nil, apperrors.InvalidInput("identifier and message are required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	demo, err := uow.DemoRepository().FindOne(ctx, specification.ByID{ID: in.DemoId})
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	if demo == nil {
		return nil, apperrors.NotFound("demo")
	}
	if !demo.Active(time.Now().UTC()) {
		return nil, apperrors.Expired("demo is no longer active")
	}

	if err := s.checkRate(ctx, demo.Id); err != nil {
		return nil, err
	}

	resolution, err := s.resolver.Resolve(ctx, demo.Id, in.Identifier, in.IdentifierType, in.Channel)
	if err != nil {
		return nil, apperrors.Persistence(err)
	}

	if err := s.budgetTrack.Check(ctx, demo.Id); err != nil {
		return nil, err
	}

	// History is loaded before the user turn is written so the new message
	// appears exactly once in the assembled prompt.
	hist, err := s.histLoader.Load(ctx, resolution.Lead.Id)
	if err != nil {
		return nil, apperrors.Persistence(err)
	}

	userMsg := &entity.ConversationMessage{
		Id:         uuid.New(),
		SessionId:  resolution.Session.Id,
		Role:       entity.RoleUser,
		Content:    in.Message,
		TokenCount: budget.EstimateTokens(in.Message),
		CreatedAt:  time.Now().UTC(),
	}
	if err := uow.MessageRepository().Create(ctx, userMsg); err != nil {
		return nil, apperrors.Persistence(err)
	}

	knowledgeContext := ""
	if demo.KnowledgeBaseId != nil {
		knowledgeContext = s.retriever.Retrieve(ctx, *demo.KnowledgeBaseId, in.Message)
	}

	systemPrompt := prompt.BuildSystemPrompt(demo, in.Channel)
	messages := prompt.AssembleMessages(systemPrompt, knowledgeContext, hist, in.Message)

	model := demo.Model
	if model == "" {
		model = s.cfg.Ai.LLMModel
	}

	if resolution.LeadCreated {
		s.publishEvent(ctx, events.NewLeadCreated(demo.Id, resolution.Lead.Id, demo.OwnerId, resolution.Lead.Identifier, string(in.Channel)))
	}

	return &preparedExchange{
		demo:       demo,
		resolution: resolution,
		messages:   messages,
		options:    []llm.Option{llm.WithModel(model)},
	}, nil
}

func (s *conversationService) StreamChat(ctx context.Context, in *Inbound, emit func(fragment string) error) (*Exchange, error) {
	prep, err := s.prepare(ctx, in)
	if err != nil {
		return nil, err
	}

	stream, err := s.llmProvider.ChatStream(ctx, prep.messages, prep.options...)
	if err != nil {
		return nil, err
	}

	var full []byte
	for fragment := range stream {
		if fragment.Err != nil {
			return nil, fragment.Err
		}
		full = append(full, fragment.Content...)
		if err := emit(fragment.Content); err != nil {
			// Consumer is gone; ctx cancellation tears down the provider
			// stream. The partial turn is not persisted.
			return nil, fmt.Errorf("emitting fragment: %w", err)
		}
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	return s.persistReply(ctx, prep, string(full), in.Channel)
}

func (s *conversationService) SendChat(ctx context.Context, in *Inbound) (*Exchange, error) {
	prep, err := s.prepare(ctx, in)
	if err != nil {
		return nil, err
	}

	reply, err := s.llmProvider.Chat(ctx, prep.messages, prep.options...)
	if err != nil {
		return nil, err
	}

	return s.persistReply(ctx, prep, reply, in.Channel)
}

func (s *conversationService) persistReply(ctx context.Context, prep *preparedExchange, reply string, channel entity.Channel) (*Exchange, error) {
	tokenCount := budget.EstimateTokens(reply)
	assistantMsg := &entity.ConversationMessage{
		Id:         uuid.New(),
		SessionId:  prep.resolution.Session.Id,
		Role:       entity.RoleAssistant,
		Content:    reply,
		TokenCount: tokenCount,
		CreatedAt:  time.Now().UTC(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.MessageRepository().Create(ctx, assistantMsg); err != nil {
		return nil, apperrors.Persistence(err)
	}

	s.publishEvent(ctx, events.NewConversationCompleted(
		prep.demo.Id, prep.resolution.Session.Id, prep.demo.OwnerId, string(channel), tokenCount))

	return &Exchange{
		Lead:       prep.resolution.Lead,
		Session:    prep.resolution.Session,
		Reply:      reply,
		TokenCount: tokenCount,
	}, nil
}

func (s *conversationService) checkRate(ctx context.Context, demoId uuid.UUID) error {
	if s.rateCounter == nil || s.cfg.Limits.RatePerMinute <= 0 {
		return nil
	}
	count, err := s.rateCounter.Increment(ctx, demoId.String(), time.Minute)
	if err != nil {
		s.log.Warn("conversation", "rate counter failed, allowing request", map[string]interface{}{
			"demo_id": demoId.String(),
			"error":   err.Error(),
		})
		return nil
	}
	if count > int64(s.cfg.Limits.RatePerMinute) {
		return apperrors.RateLimited("too many messages for this demo, slow down")
	}
	return nil
}

func (s *conversationService) publishEvent(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("conversation", "event publish failed", map[string]interface{}{
			"event_type": event.EventType(),
			"error":      err.Error(),
		})
	}
}

func (s *conversationService) FindDemoByPhoneNumber(ctx context.Context, phoneNumber string) (*entity.Demo, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	demo, err := uow.DemoRepository().FindOne(ctx, specification.ByPhoneNumber{PhoneNumber: phoneNumber})
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	if demo == nil || !demo.Active(time.Now().UTC()) {
		return nil, nil
	}
	return demo, nil
}

func (s *conversationService) FindDemoByShortCode(ctx context.Context, shortCode string) (*entity.Demo, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	demo, err := uow.DemoRepository().FindOne(ctx, specification.ByShortCode{ShortCode: shortCode})
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	if demo == nil || !demo.Active(time.Now().UTC()) {
		return nil, nil
	}
	return demo, nil
}

func (s *conversationService) GetTranscript(ctx context.Context, demoId uuid.UUID, identifier string, idType entity.IdentifierType) (*dto.TranscriptResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	normalized := identity.NormalizeIdentifier(identifier, idType)
	lead, err := uow.LeadRepository().FindByIdentifier(ctx, demoId, normalized)
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	if lead == nil {
		return nil, apperrors.NotFound("lead")
	}

	sessions, err := uow.SessionRepository().FindAll(ctx, specification.ByLeadID{LeadID: lead.Id})
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	channelBySession := make(map[uuid.UUID]entity.Channel, len(sessions))
	for _, sess := range sessions {
		channelBySession[sess.Id] = sess.Channel
	}

	messages, err := uow.MessageRepository().FindByLead(ctx, lead.Id)
	if err != nil {
		return nil, apperrors.Persistence(err)
	}

	resp := &dto.TranscriptResponse{
		LeadId:   lead.Id,
		Messages: make([]dto.TranscriptMessage, 0, len(messages)),
	}
	for _, msg := range messages {
		resp.Messages = append(resp.Messages, dto.TranscriptMessage{
			Id:        msg.Id,
			Role:      string(msg.Role),
			Content:   msg.Content,
			Channel:   string(channelBySession[msg.SessionId]),
			CreatedAt: msg.CreatedAt,
		})
	}
	return resp, nil
}
