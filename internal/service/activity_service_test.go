package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"workshop-wizard-be/internal/pkg/logger"
	"workshop-wizard-be/pkg/events"
	pktNats "workshop-wizard-be/pkg/nats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubSubscriber struct {
	subject string
	durable string
	handler pktNats.EventHandler
	err     error
}

func (s *stubSubscriber) Subscribe(subject, durable string, handler pktNats.EventHandler) error {
	s.subject, s.durable, s.handler = subject, durable, handler
	return s.err
}

func TestActivityService_LogsEvents(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sub := &stubSubscriber{}
	svc := NewActivityService(sub, logger.NewFromZap(zap.New(core)))

	require.NoError(t, svc.Start())
	assert.Equal(t, "events.>", sub.subject)
	assert.Equal(t, "workshop-activity", sub.durable)

	at := time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)
	require.NoError(t, sub.handler(context.Background(), events.NewWorkshopEvent(events.WorkshopCreated, "w1", "u1", at, nil)))
	require.NoError(t, sub.handler(context.Background(), events.NewWorkshopEvent(events.WorkshopSaveFailed, "w1", "u1", at, nil)))

	created := logs.FilterMessage(events.WorkshopCreated).All()
	require.Len(t, created, 1)
	details := created[0].ContextMap()["details"].(map[string]interface{})
	assert.Equal(t, "w1", details["workshop_id"])

	failed := logs.FilterMessage("Workshop autosave failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, zapcore.WarnLevel, failed[0].Level)
}

func TestActivityService_StartFails(t *testing.T) {
	sub := &stubSubscriber{err: errors.New("no jetstream")}
	svc := NewActivityService(sub, logger.NewNopLogger())

	assert.Error(t, svc.Start())
}
