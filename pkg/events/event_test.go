package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewWorkshopEvent(t *testing.T) {
	at := time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC)
	evt := NewWorkshopEvent(WorkshopCompleted, "w1", "u1", at, map[string]interface{}{"title": "Kickoff"})

	assert.Equal(t, "WORKSHOP_COMPLETED", evt.EventType())
	assert.Equal(t, at, evt.Timestamp())
	assert.Equal(t, map[string]interface{}{
		"workshop_id": "w1",
		"user_id":     "u1",
		"time":        "2024-03-14T09:30:00Z",
		"title":       "Kickoff",
	}, evt.Payload())
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), NewUserRegistered("u1", "a@b.c", time.Now())))
}
