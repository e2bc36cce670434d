package entity

import (
	"time"

	"github.com/google/uuid"
)

type KnowledgeBaseType string

const (
	KnowledgeBaseFAQ     KnowledgeBaseType = "faq"
	KnowledgeBaseCatalog KnowledgeBaseType = "catalog"
	KnowledgeBaseGeneral KnowledgeBaseType = "general"
)

// KnowledgeBase is a per-demo collection of ingested documents.
type KnowledgeBase struct {
	Id        uuid.UUID
	DemoId    uuid.UUID
	Name      string
	Type      KnowledgeBaseType
	CreatedAt time.Time
}

// Document is one uploaded file. Its chunks live and die with it: a failed
// ingestion removes the document and everything inserted for it.
type Document struct {
	Id              uuid.UUID
	KnowledgeBaseId uuid.UUID
	Filename        string
	Text            string
	ChunkCount      int
	CreatedAt       time.Time
}

// Chunk is a slice of a document paired with its embedding vector.
type Chunk struct {
	Id              uuid.UUID
	DocumentId      uuid.UUID
	KnowledgeBaseId uuid.UUID
	Content         string
	Embedding       []float32
	ChunkIndex      int
	CreatedAt       time.Time
}

// ScoredChunk is a retrieval hit with its cosine similarity.
type ScoredChunk struct {
	Chunk      *Chunk
	Similarity float64
}
