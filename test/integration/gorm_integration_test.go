package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"ai-salesagent-be/internal/entity"
	"ai-salesagent-be/internal/repository/contract"
	"ai-salesagent-be/internal/repository/unitofwork"
	"ai-salesagent-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.DemoRepository())
	assert.NotNil(t, uow.ChunkRepository())

	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Demo Repository", func(t *testing.T) {
		count, err := uow.DemoRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Demo count: %d", count)
	})

	t.Run("Check Chunk Repository", func(t *testing.T) {
		count, err := uow.ChunkRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Chunk count: %d", count)
	})

	t.Run("Check Transactional Lead Session Message", func(t *testing.T) {
		ctx := context.Background()

		demoId := uuid.New()
		demo := &entity.Demo{
			Id:          demoId,
			OwnerId:     uuid.New(),
			CompanyName: "Integration Test Co",
			Channel:     entity.ChannelWeb,
			Status:      entity.DemoStatusActive,
		}
		err := uow.DemoRepository().Create(ctx, demo)
		assert.NoError(t, err)

		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		leadId := uuid.New()
		lead := &entity.Lead{
			Id:             leadId,
			DemoId:         demoId,
			Identifier:     "integration-" + uuid.New().String() + "@example.com",
			IdentifierType: entity.IdentifierEmail,
			LastSeenAt:     time.Now(),
		}
		err = uow.LeadRepository().Create(ctx, lead)
		assert.NoError(t, err)

		sessionId := uuid.New()
		session := &entity.ConversationSession{
			Id:      sessionId,
			LeadId:  leadId,
			DemoId:  demoId,
			Channel: entity.ChannelWeb,
		}
		err = uow.SessionRepository().Create(ctx, session)
		assert.NoError(t, err)

		message := &entity.ConversationMessage{
			Id:         uuid.New(),
			SessionId:  sessionId,
			Role:       entity.RoleUser,
			Content:    "Hello from the integration test",
			TokenCount: 8,
		}
		err = uow.MessageRepository().Create(ctx, message)
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		t.Log("Successfully created Lead, Session and Message in Transaction")
	})

	t.Run("Check Duplicate Lead Maps To ErrDuplicate", func(t *testing.T) {
		ctx := context.Background()

		demoId := uuid.New()
		demo := &entity.Demo{
			Id:          demoId,
			OwnerId:     uuid.New(),
			CompanyName: "Duplicate Test Co",
			Channel:     entity.ChannelWeb,
			Status:      entity.DemoStatusActive,
		}
		err := uow.DemoRepository().Create(ctx, demo)
		assert.NoError(t, err)

		identifier := "dup-" + uuid.New().String() + "@example.com"
		first := &entity.Lead{
			Id:             uuid.New(),
			DemoId:         demoId,
			Identifier:     identifier,
			IdentifierType: entity.IdentifierEmail,
			LastSeenAt:     time.Now(),
		}
		err = uow.LeadRepository().Create(ctx, first)
		assert.NoError(t, err)

		second := &entity.Lead{
			Id:             uuid.New(),
			DemoId:         demoId,
			Identifier:     identifier,
			IdentifierType: entity.IdentifierEmail,
			LastSeenAt:     time.Now(),
		}
		err = uow.LeadRepository().Create(ctx, second)
		assert.ErrorIs(t, err, contract.ErrDuplicate)
	})
}
