package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"ai-salesagent-be/internal/config"
	"ai-salesagent-be/internal/dto"
	"ai-salesagent-be/internal/entity"
	"ai-salesagent-be/internal/repository/specification"
	"ai-salesagent-be/internal/repository/unitofwork"
	"ai-salesagent-be/pkg/convo/ingest"
	"ai-salesagent-be/pkg/embedding"
	"ai-salesagent-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService is the background half of document ingestion: it chunks the
// stored text, embeds the chunks, and bulk-inserts them. Any failure removes
// the Document and everything inserted for it, so a knowledge base never
// holds a half-ingested file.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.Provider
	eventPublisher    IEventPublisher
	cfg               *config.Config
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.Provider,
	eventPublisher IEventPublisher,
	cfg *config.Config,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		eventPublisher:    eventPublisher,
		cfg:               cfg,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIngestDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal ingest message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing ingestion for DocumentId: %s", payload.DocumentId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		log.Printf("[ERROR] Failed to load document %s: %v", payload.DocumentId, err)
		msg.Nack()
		return
	}
	if doc == nil {
		log.Printf("[WARN] Document not found, probably deleted: %s", payload.DocumentId)
		msg.Ack()
		return
	}

	if err := cs.ingestDocument(ctx, uow, doc, payload); err != nil {
		log.Printf("[ERROR] Ingestion failed for document %s: %v", doc.Id, err)
		cs.rollbackDocument(ctx, doc.Id)
		msg.Ack() // The document is gone; retrying the job would be pointless.
		return
	}

	msg.Ack()
}

func (cs *consumerService) ingestDocument(ctx context.Context, uow unitofwork.UnitOfWork, doc *entity.Document, payload dto.PublishIngestDocumentMessage) error {
	chunks := ingest.ChunkText(doc.Text, cs.cfg.Limits.ChunkSizeTokens, cs.cfg.Limits.ChunkOverlapTokens)
	if len(chunks) == 0 {
		return fmt.Errorf("document produced no chunks")
	}
	log.Printf("[INFO] Document %s split into %d chunks", doc.Id, len(chunks))

	existing, err := uow.ChunkRepository().Count(ctx, specification.ByKnowledgeBaseID{KnowledgeBaseID: doc.KnowledgeBaseId})
	if err != nil {
		return fmt.Errorf("counting existing chunks: %w", err)
	}
	if existing+int64(len(chunks)) > int64(cs.cfg.Limits.MaxChunksPerKB) {
		return fmt.Errorf("chunk cap exceeded: %d existing + %d new > %d", existing, len(chunks), cs.cfg.Limits.MaxChunksPerKB)
	}

	embeddings, err := cs.embeddingProvider.Embed(ctx, chunks)
	if err != nil {
		return fmt.Errorf("embedding chunks: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return fmt.Errorf("embedding count mismatch: %d chunks, %d embeddings", len(chunks), len(embeddings))
	}

	now := time.Now().UTC()
	newChunks := make([]*entity.Chunk, 0, len(chunks))
	for i, content := range chunks {
		newChunks = append(newChunks, &entity.Chunk{
			Id:              uuid.New(),
			DocumentId:      doc.Id,
			KnowledgeBaseId: doc.KnowledgeBaseId,
			Content:         content,
			Embedding:       embeddings[i],
			ChunkIndex:      i,
			CreatedAt:       now,
		})
	}

	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.ChunkRepository().CreateBulk(ctx, newChunks); err != nil {
		return fmt.Errorf("inserting chunks: %w", err)
	}

	doc.ChunkCount = len(newChunks)
	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return fmt.Errorf("updating chunk count: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("committing ingestion: %w", err)
	}

	log.Printf("[INFO] Document %s ingested with %d chunks", doc.Id, len(newChunks))

	if cs.eventPublisher != nil {
		ownerId := cs.lookupOwner(ctx, payload.DemoId)
		evt := events.NewDocumentIngested(payload.DemoId, doc.Id, ownerId, doc.Filename, len(newChunks))
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish DOCUMENT_INGESTED for %s: %v", doc.Id, err)
		}
	}

	return nil
}

// rollbackDocument removes the document and any chunks that made it in before
// the failure.
func (cs *consumerService) rollbackDocument(ctx context.Context, documentId uuid.UUID) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	if err := uow.ChunkRepository().DeleteByDocumentId(ctx, documentId); err != nil {
		log.Printf("[ERROR] Failed to delete chunks for document %s: %v", documentId, err)
	}
	if err := uow.DocumentRepository().Delete(ctx, documentId); err != nil {
		log.Printf("[ERROR] Failed to delete document %s: %v", documentId, err)
	}
}

func (cs *consumerService) lookupOwner(ctx context.Context, demoId uuid.UUID) uuid.UUID {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	demo, err := uow.DemoRepository().FindOne(ctx, specification.ByID{ID: demoId})
	if err != nil || demo == nil {
		return uuid.Nil
	}
	return demo.OwnerId
}
