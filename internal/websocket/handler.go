package websocket

import (
	"encoding/json"

	"workshop-wizard-be/internal/dto"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs joins the connection to the workshop room, sends the current
// snapshot first and blocks until the peer goes away.
func ServeWs(hub *Hub, conn *websocket.Conn, workshopId, userId uuid.UUID, snapshot *dto.DispatchResponse) {
	client := newClient(hub, conn, workshopId, userId)

	if snapshot != nil {
		data, err := json.Marshal(Message{Type: MessageSnapshot, WorkshopId: workshopId, Data: snapshot})
		if err == nil {
			client.Send <- data
		}
	}
	hub.register(client)

	go client.writePump()
	client.readPump()
}
