package handler

import (
	"workshop-wizard-be/internal/dto"
	"workshop-wizard-be/internal/pkg/logger"
	"workshop-wizard-be/internal/pkg/serverutils"
	"workshop-wizard-be/internal/service"
	internalWS "workshop-wizard-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// LiveHandler streams session updates of one workshop over a websocket.
type LiveHandler struct {
	workshops service.IWorkshopService
	hub       *internalWS.Hub
	jwtSecret string
	logger    logger.ILogger
}

func NewLiveHandler(workshops service.IWorkshopService, hub *internalWS.Hub, jwtSecret string, log logger.ILogger) *LiveHandler {
	return &LiveHandler{
		workshops: workshops,
		hub:       hub,
		jwtSecret: jwtSecret,
		logger:    log,
	}
}

// RegisterRoutes mounts the socket outside the /workshops group, whose bearer
// middleware browsers cannot satisfy during the handshake.
func (h *LiveHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/live/workshops/:id", h.ServeWs)
}

func (h *LiveHandler) ServeWs(c *fiber.Ctx) error {
	// Browsers pass the token as a query param, tooling as a header.
	tokenStr := c.Query("token")
	if tokenStr == "" {
		tokenStr = serverutils.BearerToken(c)
	}
	if tokenStr == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Missing token")
	}

	rawUserID, err := serverutils.ParseUserToken(h.jwtSecret, tokenStr)
	if err != nil {
		h.logger.Warn("LiveHandler", "Invalid token in websocket handshake", map[string]interface{}{"error": err.Error()})
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid user ID")
	}

	workshopID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid workshop ID")
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	current, err := h.workshops.Show(c.UserContext(), userID, workshopID)
	if err != nil {
		return err
	}
	snapshot := &dto.DispatchResponse{Data: current.Data, Session: current.Session}

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("LiveHandler", "Starting live session", map[string]interface{}{
			"workshop_id": workshopID.String(),
			"user_id":     userID.String(),
		})
		internalWS.ServeWs(h.hub, conn, workshopID, userID, snapshot)
		h.logger.Info("LiveHandler", "Live session ended", map[string]interface{}{
			"workshop_id": workshopID.String(),
		})
	})(c)
}
