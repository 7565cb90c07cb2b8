package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"workshop-wizard-be/internal/dto"
	"workshop-wizard-be/internal/entity"
	"workshop-wizard-be/internal/pkg/logger"
	"workshop-wizard-be/internal/repository/memory"
	"workshop-wizard-be/pkg/events"
	"workshop-wizard-be/pkg/store"
	"workshop-wizard-be/pkg/workshop"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const autosaveTopic = "WORKSHOP_AUTOSAVE"

type autosaveFixture struct {
	consumer *consumerService
	db       *fakeDB
	sessions *memory.SessionRepository
	events   *recordingEvents
	logs     *observer.ObservedLogs

	workshopId uuid.UUID
	userId     uuid.UUID
}

func newAutosaveFixture(t *testing.T, subscriber message.Subscriber, debounce time.Duration) *autosaveFixture {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	f := &autosaveFixture{
		db:         newFakeDB(),
		sessions:   memory.NewSessionRepository(time.Hour),
		events:     &recordingEvents{},
		logs:       logs,
		workshopId: uuid.New(),
		userId:     uuid.New(),
	}

	doc := workshop.InitialDocument(fixedNow)
	f.db.workshops[f.workshopId] = entity.Workshop{
		Id:       f.workshopId,
		UserId:   f.userId,
		Title:    "Autosave",
		Document: doc,
	}

	f.consumer = NewConsumerService(
		subscriber, autosaveTopic, f.db, f.sessions, f.events,
		logger.NewFromZap(zap.New(core)), debounce,
	).(*consumerService)
	return f
}

// edit applies n SET_NOTES actions to the live session.
func (f *autosaveFixture) edit(t *testing.T, notes string, n int) *store.Session {
	t.Helper()
	ctx := context.Background()

	session, err := f.sessions.Get(ctx, f.workshopId.String())
	require.NoError(t, err)
	if session == nil {
		stored, _ := f.db.workshop(f.workshopId)
		session = store.NewSession(f.workshopId.String(), f.userId.String(), stored.Document, fixedNow)
	}

	reducer := workshop.NewReducer()
	for i := 0; i < n; i++ {
		session.Apply(reducer, workshop.SetNotes{Notes: notes}, fixedNow)
	}
	require.NoError(t, f.sessions.Save(ctx, session))
	return session
}

func (f *autosaveFixture) message(t *testing.T, revision int64) *message.Message {
	t.Helper()
	payload, err := json.Marshal(dto.AutosaveMessage{WorkshopId: f.workshopId, UserId: f.userId, Revision: revision})
	require.NoError(t, err)
	return message.NewMessage(watermill.NewUUID(), payload)
}

func (f *autosaveFixture) pendingCount() int {
	f.consumer.mu.Lock()
	defer f.consumer.mu.Unlock()
	return len(f.consumer.pending)
}

func TestConsumerService_DebouncesBurst(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	f := newAutosaveFixture(t, pubSub, 50*time.Millisecond)
	require.NoError(t, f.consumer.Consume(context.Background()))

	f.edit(t, "draft", 3)
	for rev := int64(1); rev <= 3; rev++ {
		require.NoError(t, pubSub.Publish(autosaveTopic, f.message(t, rev)))
	}

	assert.Eventually(t, func() bool { return f.db.saveCount() == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, 1, f.db.saveCount(), "a burst costs one write")

	stored, _ := f.db.workshop(f.workshopId)
	assert.Equal(t, "draft", stored.Document.Notes)
}

func TestConsumerService_FlushWritesPending(t *testing.T) {
	f := newAutosaveFixture(t, nil, time.Hour)

	f.edit(t, "before shutdown", 1)
	f.consumer.processMessage(f.message(t, 1))
	require.Equal(t, 1, f.pendingCount())

	f.consumer.Flush(context.Background())

	assert.Equal(t, 0, f.pendingCount())
	assert.Equal(t, 1, f.db.saveCount())
	stored, _ := f.db.workshop(f.workshopId)
	assert.Equal(t, "before shutdown", stored.Document.Notes)
}

func TestConsumerService_SkipsSavedRevision(t *testing.T) {
	f := newAutosaveFixture(t, nil, time.Hour)
	ctx := context.Background()

	f.edit(t, "once", 2)
	f.consumer.schedule(f.workshopId, f.userId)
	f.consumer.Flush(ctx)
	require.Equal(t, 1, f.db.saveCount())

	f.consumer.schedule(f.workshopId, f.userId)
	f.consumer.Flush(ctx)
	assert.Equal(t, 1, f.db.saveCount())

	f.edit(t, "twice", 1)
	f.consumer.schedule(f.workshopId, f.userId)
	f.consumer.Flush(ctx)
	assert.Equal(t, 2, f.db.saveCount())
}

func TestConsumerService_ForgetsRevisionOfEndedSession(t *testing.T) {
	f := newAutosaveFixture(t, nil, time.Hour)
	ctx := context.Background()

	f.edit(t, "kept", 1)
	f.consumer.schedule(f.workshopId, f.userId)
	f.consumer.Flush(ctx)
	require.Equal(t, 1, f.consumer.saved.ItemCount())

	require.NoError(t, f.sessions.Delete(ctx, f.workshopId.String()))
	f.consumer.schedule(f.workshopId, f.userId)
	f.consumer.Flush(ctx)

	assert.Equal(t, 0, f.consumer.saved.ItemCount())
	assert.Equal(t, 1, f.db.saveCount())
}

func TestConsumerService_SavedRevisionsExpire(t *testing.T) {
	f := newAutosaveFixture(t, nil, time.Hour)
	f.consumer.saved = cache.New(20*time.Millisecond, 5*time.Millisecond)
	ctx := context.Background()

	f.edit(t, "idle", 1)
	f.consumer.schedule(f.workshopId, f.userId)
	f.consumer.Flush(ctx)
	require.Equal(t, 1, f.consumer.saved.ItemCount())

	// Entries of workshops nobody touches again are dropped.
	assert.Eventually(t, func() bool { return f.consumer.saved.ItemCount() == 0 }, time.Second, 5*time.Millisecond)

	// Forgetting only costs a redundant write of the same revision.
	f.consumer.schedule(f.workshopId, f.userId)
	f.consumer.Flush(ctx)
	assert.Equal(t, 2, f.db.saveCount())
	stored, _ := f.db.workshop(f.workshopId)
	assert.Equal(t, "idle", stored.Document.Notes)
}

func TestConsumerService_MissingSessionIsIgnored(t *testing.T) {
	f := newAutosaveFixture(t, nil, time.Hour)

	f.consumer.schedule(f.workshopId, f.userId)
	f.consumer.Flush(context.Background())

	assert.Equal(t, 0, f.db.saveCount())
	assert.Empty(t, f.events.types())
}

func TestConsumerService_FailureReportsEvent(t *testing.T) {
	f := newAutosaveFixture(t, nil, time.Hour)
	f.db.saveErr = errStorageDown

	f.edit(t, "unsaved", 1)
	f.consumer.schedule(f.workshopId, f.userId)
	f.consumer.Flush(context.Background())

	require.Equal(t, []string{events.WorkshopSaveFailed}, f.events.types())
	payload := f.events.events[0].Payload()
	assert.Equal(t, f.workshopId.String(), payload["workshop_id"])
	assert.Equal(t, "storage down", payload["reason"])

	entries := f.logs.FilterMessage("Failed to save workshop").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)

	// The session is kept so the next attempt can succeed.
	session, err := f.sessions.Get(context.Background(), f.workshopId.String())
	require.NoError(t, err)
	assert.Equal(t, "unsaved", session.State.Document.Notes)

	f.db.saveErr = nil
	f.consumer.schedule(f.workshopId, f.userId)
	f.consumer.Flush(context.Background())
	assert.Equal(t, 1, f.db.saveCount())
}

func TestConsumerService_AcksMalformedMessage(t *testing.T) {
	f := newAutosaveFixture(t, nil, time.Hour)

	msg := message.NewMessage(watermill.NewUUID(), []byte("not json"))
	f.consumer.processMessage(msg)

	select {
	case <-msg.Acked():
	default:
		t.Fatal("malformed message was not acked")
	}
	assert.Equal(t, 0, f.pendingCount())
	assert.Len(t, f.logs.FilterMessage("Failed to unmarshal autosave message").All(), 1)
}
