package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"workshop-wizard-be/internal/dto"
	"workshop-wizard-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ClusterChannel carries session updates between backend instances.
const ClusterChannel = "workshop_sessions"

// Message is what a live client receives.
type Message struct {
	Type       string                `json:"type"`
	WorkshopId uuid.UUID             `json:"workshop_id"`
	Data       *dto.DispatchResponse `json:"data"`
}

const (
	MessageSnapshot = "snapshot"
	MessageSession  = "session"
)

type clusterMessage struct {
	Origin     string          `json:"origin"`
	WorkshopId uuid.UUID       `json:"workshop_id"`
	Message    json.RawMessage `json:"message"`
}

// Hub fans session updates out to every connection watching a workshop.
type Hub struct {
	// Workshop id -> connected clients (one per browser tab)
	rooms map[uuid.UUID]map[*Client]struct{}
	mu    sync.RWMutex

	// Redis connection for cross-instance communication, may be nil
	rdb    *redis.Client
	origin string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		rooms:  make(map[uuid.UUID]map[*Client]struct{}),
		rdb:    rdb,
		origin: uuid.NewString(),
		logger: log,
	}
}

// Run relays updates published by other instances until ctx is done. It
// returns immediately when Redis is not configured.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb == nil {
		return
	}

	pubsub := h.rdb.Subscribe(ctx, ClusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.relay([]byte(msg.Payload))
		}
	}
}

func (h *Hub) relay(raw []byte) {
	var payload clusterMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		h.logger.Warn("Hub", "Failed to parse cluster message", map[string]interface{}{"error": err.Error()})
		return
	}
	if payload.Origin == h.origin {
		return
	}
	h.deliver(payload.WorkshopId, payload.Message)
}

// SessionChanged implements service.SessionNotifier.
func (h *Hub) SessionChanged(ctx context.Context, workshopId uuid.UUID, update *dto.DispatchResponse) {
	data, err := json.Marshal(Message{Type: MessageSession, WorkshopId: workshopId, Data: update})
	if err != nil {
		h.logger.Error("Hub", "Failed to encode session update", map[string]interface{}{"error": err.Error()})
		return
	}

	h.deliver(workshopId, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(clusterMessage{Origin: h.origin, WorkshopId: workshopId, Message: data})
		if err := h.rdb.Publish(ctx, ClusterChannel, payload).Err(); err != nil {
			h.logger.Warn("Hub", "Failed to publish session update", map[string]interface{}{
				"workshop_id": workshopId.String(),
				"error":       err.Error(),
			})
		}
	}
}

func (h *Hub) deliver(workshopId uuid.UUID, data []byte) {
	var slow []*Client

	h.mu.RLock()
	for client := range h.rooms[workshopId] {
		select {
		case client.Send <- data:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{
			"workshop_id": workshopId.String(),
			"user_id":     client.UserID.String(),
		})
		h.unregister(client)
	}
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[client.WorkshopID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[client.WorkshopID] = room
	}
	room[client] = struct{}{}
	h.logger.Info("Hub", "Client joined workshop", map[string]interface{}{
		"workshop_id": client.WorkshopID.String(),
		"user_id":     client.UserID.String(),
	})
}

// unregister removes the client and closes its send channel. Safe to call
// more than once.
func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[client.WorkshopID]
	if !ok {
		return
	}
	if _, ok := room[client]; !ok {
		return
	}
	delete(room, client)
	close(client.Send)
	if len(room) == 0 {
		delete(h.rooms, client.WorkshopID)
	}
}

// Watchers reports how many local connections follow the workshop.
func (h *Hub) Watchers(workshopId uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[workshopId])
}
