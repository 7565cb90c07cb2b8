package events

import "time"

// Event type codes. The NATS subject is "events.<code>".
const (
	UserRegistered     = "USER_REGISTERED"
	WorkshopCreated    = "WORKSHOP_CREATED"
	WorkshopCompleted  = "WORKSHOP_COMPLETED"
	WorkshopDeleted    = "WORKSHOP_DELETED"
	WorkshopImported   = "WORKSHOP_IMPORTED"
	WorkshopSaveFailed = "WORKSHOP_SAVE_FAILED"
)

func NewUserRegistered(userID, email string, at time.Time) BaseEvent {
	return BaseEvent{
		Type: UserRegistered,
		Data: map[string]interface{}{
			"user_id": userID,
			"email":   email,
		},
		OccurredAt: at,
	}
}

// NewWorkshopEvent builds any of the workshop lifecycle events.
func NewWorkshopEvent(eventType, workshopID, userID string, at time.Time, extra map[string]interface{}) BaseEvent {
	data := map[string]interface{}{
		"workshop_id": workshopID,
		"user_id":     userID,
		"time":        at.Format(time.RFC3339),
	}
	for k, v := range extra {
		data[k] = v
	}
	return BaseEvent{Type: eventType, Data: data, OccurredAt: at}
}
