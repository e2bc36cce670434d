package unitofwork

import (
	"context"

	"ai-salesagent-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DemoRepository() contract.DemoRepository
	LeadRepository() contract.LeadRepository
	SessionRepository() contract.SessionRepository
	MessageRepository() contract.MessageRepository

	KnowledgeBaseRepository() contract.KnowledgeBaseRepository
	DocumentRepository() contract.DocumentRepository
	ChunkRepository() contract.ChunkRepository
}
