package bootstrap

import (
	"context"
	"log"

	"ai-salesagent-be/internal/config"
	"ai-salesagent-be/internal/controller"
	"ai-salesagent-be/internal/handler"
	"ai-salesagent-be/internal/pkg/logger"
	"ai-salesagent-be/internal/pkg/serverutils"
	"ai-salesagent-be/internal/repository/unitofwork"
	"ai-salesagent-be/internal/service"
	"ai-salesagent-be/internal/websocket"
	"ai-salesagent-be/pkg/convo/budget"
	"ai-salesagent-be/pkg/convo/history"
	"ai-salesagent-be/pkg/convo/identity"
	"ai-salesagent-be/pkg/convo/retrieval"
	"ai-salesagent-be/pkg/embedding"
	"ai-salesagent-be/pkg/llm/factory"
	"ai-salesagent-be/pkg/mailer"
	"ai-salesagent-be/pkg/ratelimit"

	pktNats "ai-salesagent-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController      controller.IChatController
	WebhookController   controller.IWebhookController
	KnowledgeController controller.IKnowledgeController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

	// Error middleware, built here so it shares the system logger
	ErrorMiddleware fiber.Handler
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	mailService := mailer.NewMailer(cfg.SMTP)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	embeddingProvider, err := embedding.NewProvider(cfg)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Embedding Provider: %v", err)
	}
	log.Printf("[INFO] Using Embedding Provider: %s (%s)", cfg.Ai.EmbeddingProvider, cfg.Ai.EmbeddingModel)

	llmProvider, err := factory.NewProvider(cfg)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 3.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		natsSub = nil
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// Rate limit counter
	var rateCounter ratelimit.Counter
	if cfg.App.RateCounterBackend == "redis" {
		rateCounter = ratelimit.NewRedisCounter(rdb)
		log.Printf("[INFO] Using Redis rate counter")
	} else {
		rateCounter = ratelimit.NewMemoryCounter()
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 4. Conversation Runtime
	rootUow := uowFactory.NewUnitOfWork(context.Background())
	resolver := identity.NewResolver(rootUow.LeadRepository(), rootUow.SessionRepository())
	histLoader := history.NewLoader(rootUow.MessageRepository(), cfg.Limits.HistoryMaxMessages)
	budgetTracker := budget.NewTracker(rootUow.MessageRepository(), sysLogger, int64(cfg.Limits.TokenBudget))
	retrievalEngine := retrieval.NewEngine(
		rootUow.ChunkRepository(),
		embeddingProvider,
		sysLogger,
		cfg.Limits.RetrievalLimit,
		cfg.Limits.RetrievalThreshold,
	)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Keys.IngestTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.IngestTopic,
		uowFactory,
		embeddingProvider,
		eventPublisherOrNil(natsPub),
		cfg,
	)

	conversationService := service.NewConversationService(
		uowFactory,
		resolver,
		histLoader,
		budgetTracker,
		retrievalEngine,
		llmProvider,
		rateCounter,
		eventPublisherOrNil(natsPub),
		sysLogger,
		cfg,
	)

	knowledgeService := service.NewKnowledgeService(uowFactory, publisherService, sysLogger, cfg)

	// 6. Notification System
	if natsSub != nil {
		notifService := service.NewNotificationService(natsSub, wsHub, wsLogger)
		notifService.Start()
	} else {
		log.Printf("[WARN] NATS subscriber unavailable, dashboard notifications disabled")
	}

	// 7. Controllers
	chatController := controller.NewChatController(conversationService, sysLogger)
	webhookController := controller.NewWebhookController(conversationService, mailService, sysLogger, cfg.Keys.TwilioAuthToken)
	knowledgeController := controller.NewKnowledgeController(knowledgeService)
	notificationHandler := handler.NewNotificationHandler(wsHub, wsLogger)

	return &Container{
		ChatController:      chatController,
		WebhookController:   webhookController,
		KnowledgeController: knowledgeController,
		ConsumerService:     consumerService,
		NotificationHandler: notificationHandler,
		WebSocketHub:        wsHub,
		ErrorMiddleware:     serverutils.ErrorHandlerMiddleware(sysLogger),
	}
}

// eventPublisherOrNil keeps a typed nil out of the IEventPublisher interface
// when NATS is down.
func eventPublisherOrNil(pub *pktNats.Publisher) service.IEventPublisher {
	if pub == nil {
		return nil
	}
	return pub
}
