package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateKnowledgeBaseRequest struct {
	DemoId uuid.UUID `json:"demo_id" validate:"required"`
	Name   string    `json:"name" validate:"required,max=120"`
	Type   string    `json:"type" validate:"required,oneof=faq catalog general"`
}

type CreateKnowledgeBaseResponse struct {
	Id uuid.UUID `json:"id"`
}

type UploadDocumentResponse struct {
	DocumentId uuid.UUID `json:"document_id"`
	Filename   string    `json:"filename"`
	Status     string    `json:"status"`
}

type DocumentStatusResponse struct {
	Id         uuid.UUID `json:"id"`
	Filename   string    `json:"filename"`
	ChunkCount int       `json:"chunk_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// PublishIngestDocumentMessage rides the ingestion queue between upload and
// the background worker.
type PublishIngestDocumentMessage struct {
	DocumentId      uuid.UUID `json:"document_id"`
	KnowledgeBaseId uuid.UUID `json:"knowledge_base_id"`
	DemoId          uuid.UUID `json:"demo_id"`
	Filename        string    `json:"filename"`
}
