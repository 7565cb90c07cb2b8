package service

import (
	"context"

	"workshop-wizard-be/internal/pkg/logger"
	"workshop-wizard-be/pkg/events"
	pktNats "workshop-wizard-be/pkg/nats"
)

// EventSubscriber is satisfied by pkg/nats.Subscriber.
type EventSubscriber interface {
	Subscribe(subject string, durableName string, handler pktNats.EventHandler) error
}

// ActivityService writes every domain event to the activity log.
type ActivityService struct {
	subscriber EventSubscriber
	logger     logger.ILogger
}

func NewActivityService(sub EventSubscriber, log logger.ILogger) *ActivityService {
	return &ActivityService{
		subscriber: sub,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *ActivityService) Start() error {
	subject := pktNats.SubjectPrefix + ">"
	if err := s.subscriber.Subscribe(subject, "workshop-activity", s.handleEvent); err != nil {
		s.logger.Error("ActivityService", "Failed to start activity subscriber", map[string]interface{}{"error": err})
		return err
	}
	s.logger.Info("ActivityService", "Activity log listening to "+subject, nil)
	return nil
}

func (s *ActivityService) handleEvent(_ context.Context, event events.Event) error {
	details := map[string]interface{}{
		"type":        event.EventType(),
		"occurred_at": event.Timestamp(),
	}
	for k, v := range event.Payload() {
		details[k] = v
	}

	if event.EventType() == events.WorkshopSaveFailed {
		s.logger.Warn("ActivityService", "Workshop autosave failed", details)
		return nil
	}
	s.logger.Info("ActivityService", event.EventType(), details)
	return nil
}
