package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handler upgrades authenticated requests to push connections
type Handler struct {
	hub    *Hub
	logger zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:    hub,
		logger: logger,
	}
}

// HandleConnection godoc
// @Summary Open a live event stream
// @Description Upgrades the connection to a WebSocket that receives notifications and new messages for the authenticated user
// @Tags realtime
// @Security BearerAuth
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 401 {object} gin.H "Unauthorized: JWT token missing or invalid"
// @Router /ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	userID, ok := c.Get("userID")
	id, isInt := userID.(int64)
	if !ok || !isInt {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Int64("userID", id).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:    h.hub,
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: id,
		logger: h.logger,
	}
	select {
	case h.hub.register <- client:
	case <-h.hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Int64("userID", id).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}
