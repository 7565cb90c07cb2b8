package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"workshop-wizard-be/internal/dto"
	"workshop-wizard-be/internal/pkg/logger"
	"workshop-wizard-be/internal/repository/contract"
	"workshop-wizard-be/internal/repository/unitofwork"
	"workshop-wizard-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// savedRevisionTTL bounds how long the last written revision of a workshop is
// remembered. An expired entry only costs one redundant write.
const savedRevisionTTL = 6 * time.Hour

// IConsumerService persists live sessions in the background. Autosave
// requests are debounced per workshop, so a burst of actions costs one write.
type IConsumerService interface {
	Consume(ctx context.Context) error
	// Flush writes every pending workshop immediately. Called on shutdown.
	Flush(ctx context.Context)
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	sessions   contract.SessionRepository
	events     events.Publisher
	logger     logger.ILogger
	debounce   time.Duration
	now        func() time.Time

	locks   *keyedMutex
	mu      sync.Mutex
	pending map[uuid.UUID]*pendingSave
	saved   *cache.Cache // workshop id -> last revision written
}

type pendingSave struct {
	timer  *time.Timer
	userId uuid.UUID
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	sessions contract.SessionRepository,
	eventPublisher events.Publisher,
	log logger.ILogger,
	debounce time.Duration,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		uowFactory: uowFactory,
		sessions:   sessions,
		events:     eventPublisher,
		logger:     log,
		debounce:   debounce,
		now:        time.Now,
		locks:      newKeyedMutex(),
		pending:    make(map[uuid.UUID]*pendingSave),
		saved:      cache.New(savedRevisionTTL, 10*time.Minute),
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.AutosaveMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("AutosaveConsumer", "Failed to unmarshal autosave message", map[string]interface{}{"error": err})
		msg.Ack() // never becomes valid
		return
	}

	cs.schedule(payload.WorkshopId, payload.UserId)
	msg.Ack()
}

// schedule (re)starts the debounce timer for a workshop.
func (cs *consumerService) schedule(workshopId, userId uuid.UUID) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if p, ok := cs.pending[workshopId]; ok {
		p.timer.Stop()
	}
	cs.pending[workshopId] = &pendingSave{
		userId: userId,
		timer: time.AfterFunc(cs.debounce, func() {
			cs.flushOne(context.Background(), workshopId)
		}),
	}
}

func (cs *consumerService) Flush(ctx context.Context) {
	cs.mu.Lock()
	ids := make([]uuid.UUID, 0, len(cs.pending))
	for id, p := range cs.pending {
		p.timer.Stop()
		ids = append(ids, id)
	}
	cs.mu.Unlock()

	for _, id := range ids {
		cs.flushOne(ctx, id)
	}
}

func (cs *consumerService) flushOne(ctx context.Context, workshopId uuid.UUID) {
	unlock := cs.locks.Lock(workshopId.String())
	defer unlock()

	cs.mu.Lock()
	p, ok := cs.pending[workshopId]
	delete(cs.pending, workshopId)
	cs.mu.Unlock()
	if !ok {
		return // flushed already
	}

	session, err := cs.sessions.Get(ctx, workshopId.String())
	if err != nil {
		cs.fail(ctx, workshopId, p.userId, err)
		return
	}
	if session == nil {
		// Deleted or expired; nothing left to save.
		cs.forget(workshopId)
		return
	}
	if lastSaved, seen := cs.saved.Get(workshopId.String()); seen && session.Revision <= lastSaved.(int64) {
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	saved, err := uow.WorkshopRepository().SaveDocument(ctx, workshopId, session.State.Document, cs.now())
	if err != nil {
		cs.fail(ctx, workshopId, p.userId, err)
		return
	}
	if !saved {
		cs.logger.Warn("AutosaveConsumer", "Workshop vanished before autosave", map[string]interface{}{
			"workshop_id": workshopId.String(),
		})
		cs.forget(workshopId)
		return
	}

	cs.saved.SetDefault(workshopId.String(), session.Revision)

	cs.logger.Debug("AutosaveConsumer", "Workshop saved", map[string]interface{}{
		"workshop_id": workshopId.String(),
		"revision":    session.Revision,
	})
}

// fail logs and reports a failed save. The live session is left as is, so
// the next action retries with the newer document.
func (cs *consumerService) fail(ctx context.Context, workshopId, userId uuid.UUID, err error) {
	cs.logger.Error("AutosaveConsumer", "Failed to save workshop", map[string]interface{}{
		"workshop_id": workshopId.String(),
		"error":       err,
	})

	evt := events.NewWorkshopEvent(events.WorkshopSaveFailed, workshopId.String(), userId.String(), cs.now(), map[string]interface{}{
		"reason": err.Error(),
	})
	if pubErr := cs.events.Publish(ctx, evt); pubErr != nil {
		cs.logger.Warn("AutosaveConsumer", "Failed to publish WORKSHOP_SAVE_FAILED event", map[string]interface{}{"error": pubErr.Error()})
	}
}

func (cs *consumerService) forget(workshopId uuid.UUID) {
	cs.saved.Delete(workshopId.String())
}
