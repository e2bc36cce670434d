package service

import (
	"context"
	"fmt"
	"strings"

	"ai-salesagent-be/internal/pkg/logger"
	internalWS "ai-salesagent-be/internal/websocket"
	"ai-salesagent-be/pkg/events"
	pktNats "ai-salesagent-be/pkg/nats"

	"github.com/google/uuid"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(operatorID uuid.UUID, notification internalWS.Notification)
}

// NotificationService relays domain events from the NATS bus to connected
// operator dashboards.
type NotificationService struct {
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	typeCode := strings.TrimPrefix(event.EventType(), "events.")
	payload := event.Payload()

	ownerIdStr, _ := payload["owner_id"].(string)
	ownerId, err := uuid.Parse(ownerIdStr)
	if err != nil || ownerId == uuid.Nil {
		// Event without a deliverable owner; nothing to push.
		return nil
	}

	demoId, _ := payload["demo_id"].(string)

	var message string
	switch typeCode {
	case events.TypeLeadCreated:
		identifier, _ := payload["identifier"].(string)
		channel, _ := payload["channel"].(string)
		message = fmt.Sprintf("New lead %s via %s", identifier, channel)
	case events.TypeConversationCompleted:
		channel, _ := payload["channel"].(string)
		message = fmt.Sprintf("Conversation turn completed on %s", channel)
	case events.TypeDocumentIngested:
		filename, _ := payload["filename"].(string)
		message = fmt.Sprintf("Document %s ingested", filename)
	default:
		s.logger.Info("NotificationService", fmt.Sprintf("Ignoring event type: %s", typeCode), nil)
		return nil
	}

	s.delivery.Send(ownerId, internalWS.Notification{
		Type:    typeCode,
		DemoId:  demoId,
		Message: message,
		Data:    payload,
	})
	return nil
}
