package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-salesagent-be/internal/config"
	"ai-salesagent-be/internal/dto"
	"ai-salesagent-be/internal/entity"
	"ai-salesagent-be/internal/pkg/apperrors"
	"ai-salesagent-be/internal/pkg/logger"
	"ai-salesagent-be/internal/repository/specification"
	"ai-salesagent-be/internal/repository/unitofwork"
	"ai-salesagent-be/pkg/convo/ingest"

	"github.com/google/uuid"
)

type IKnowledgeService interface {
	CreateKnowledgeBase(ctx context.Context, ownerId uuid.UUID, req *dto.CreateKnowledgeBaseRequest) (*dto.CreateKnowledgeBaseResponse, error)

	// UploadDocument validates the file, extracts its text synchronously so
	// format errors surface immediately, persists the Document, and queues
	// chunking/embedding for the background worker.
	UploadDocument(ctx context.Context, ownerId uuid.UUID, kbId uuid.UUID, filename string, raw []byte) (*dto.UploadDocumentResponse, error)

	ListDocuments(ctx context.Context, ownerId uuid.UUID, kbId uuid.UUID) ([]*dto.DocumentStatusResponse, error)
}

type knowledgeService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	log              logger.ILogger
	cfg              *config.Config
}

func NewKnowledgeService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	log logger.ILogger,
	cfg *config.Config,
) IKnowledgeService {
	return &knowledgeService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		log:              log,
		cfg:              cfg,
	}
}

func (s *knowledgeService) CreateKnowledgeBase(ctx context.Context, ownerId uuid.UUID, req *dto.CreateKnowledgeBaseRequest) (*dto.CreateKnowledgeBaseResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	demo, err := uow.DemoRepository().FindOne(ctx, specification.ByID{ID: req.DemoId})
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	if demo == nil || demo.OwnerId != ownerId {
		return nil, apperrors.NotFound("demo")
	}

	kb := &entity.KnowledgeBase{
		Id:        uuid.New(),
		DemoId:    req.DemoId,
		Name:      req.Name,
		Type:      entity.KnowledgeBaseType(req.Type),
		CreatedAt: time.Now().UTC(),
	}
	if err := uow.KnowledgeBaseRepository().Create(ctx, kb); err != nil {
		return nil, apperrors.Persistence(err)
	}

	return &dto.CreateKnowledgeBaseResponse{Id: kb.Id}, nil
}

func (s *knowledgeService) UploadDocument(ctx context.Context, ownerId uuid.UUID, kbId uuid.UUID, filename string, raw []byte) (*dto.UploadDocumentResponse, error) {
	if len(raw) == 0 {
		return nil, apperrors.InvalidInput("empty file")
	}
	if len(raw) > s.cfg.Limits.MaxFileSizeBytes {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", apperrors.ErrLimitExceeded, s.cfg.Limits.MaxFileSizeBytes)
	}
	if !ingest.SupportedExtension(filename) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedFormat, filename)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	kb, err := uow.KnowledgeBaseRepository().FindOne(ctx, specification.ByID{ID: kbId})
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	if kb == nil {
		return nil, apperrors.NotFound("knowledge base")
	}
	demo, err := uow.DemoRepository().FindOne(ctx, specification.ByID{ID: kb.DemoId})
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	if demo == nil || demo.OwnerId != ownerId {
		return nil, apperrors.NotFound("knowledge base")
	}

	docCount, err := uow.DocumentRepository().Count(ctx, specification.ByKnowledgeBaseID{KnowledgeBaseID: kbId})
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	if docCount >= int64(s.cfg.Limits.MaxFilesPerKB) {
		return nil, fmt.Errorf("%w: knowledge base already holds %d files", apperrors.ErrLimitExceeded, docCount)
	}

	// Extraction runs inline so the uploader learns about a bad file now, not
	// from a background log line.
	text, err := ingest.ExtractText(raw, filename)
	if err != nil {
		return nil, err
	}

	doc := &entity.Document{
		Id:              uuid.New(),
		KnowledgeBaseId: kbId,
		Filename:        filename,
		Text:            text,
		ChunkCount:      0,
		CreatedAt:       time.Now().UTC(),
	}
	if err := uow.DocumentRepository().Create(ctx, doc); err != nil {
		return nil, apperrors.Persistence(err)
	}

	msgPayload := dto.PublishIngestDocumentMessage{
		DocumentId:      doc.Id,
		KnowledgeBaseId: kbId,
		DemoId:          demo.Id,
		Filename:        filename,
	}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return nil, fmt.Errorf("marshaling ingest message: %w", err)
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		// The job never reached the queue; remove the half-ingested document.
		if delErr := uow.DocumentRepository().Delete(ctx, doc.Id); delErr != nil {
			s.log.Error("knowledge", "failed to clean up document after publish failure", map[string]interface{}{
				"document_id": doc.Id.String(),
				"error":       delErr.Error(),
			})
		}
		return nil, apperrors.Ingestion("queueing ingestion job", err)
	}

	s.log.Info("knowledge", "document queued for ingestion", map[string]interface{}{
		"document_id": doc.Id.String(),
		"kb_id":       kbId.String(),
		"filename":    filename,
	})

	return &dto.UploadDocumentResponse{
		DocumentId: doc.Id,
		Filename:   filename,
		Status:     "queued",
	}, nil
}

func (s *knowledgeService) ListDocuments(ctx context.Context, ownerId uuid.UUID, kbId uuid.UUID) ([]*dto.DocumentStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	kb, err := uow.KnowledgeBaseRepository().FindOne(ctx, specification.ByID{ID: kbId})
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	if kb == nil {
		return nil, apperrors.NotFound("knowledge base")
	}
	demo, err := uow.DemoRepository().FindOne(ctx, specification.ByID{ID: kb.DemoId})
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	if demo == nil || demo.OwnerId != ownerId {
		return nil, apperrors.NotFound("knowledge base")
	}

	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.ByKnowledgeBaseID{KnowledgeBaseID: kbId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, apperrors.Persistence(err)
	}

	result := make([]*dto.DocumentStatusResponse, 0, len(docs))
	for _, doc := range docs {
		result = append(result, &dto.DocumentStatusResponse{
			Id:         doc.Id,
			Filename:   doc.Filename,
			ChunkCount: doc.ChunkCount,
			CreatedAt:  doc.CreatedAt,
		})
	}
	return result, nil
}
