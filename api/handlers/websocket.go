package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/augustawind/conway-web/internal/server"
)

// WebSocketHandler exposes the game server's websocket endpoint.
type WebSocketHandler struct {
	wsHandler *server.Handler
}

// NewWebSocketHandler creates a new WebSocketHandler.
func NewWebSocketHandler(wsHandler *server.Handler) *WebSocketHandler {
	return &WebSocketHandler{wsHandler: wsHandler}
}

// Attach handles GET /ws - upgrades the request and runs a game session until
// the client disconnects.
func (h *WebSocketHandler) Attach(c *gin.Context) {
	if err := h.wsHandler.HandleConnection(c.Writer, c.Request); err != nil {
		// The upgrader has already written the failure response.
		return
	}
}

// RegisterRoutes registers the websocket route on a Gin router group.
func (h *WebSocketHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws", h.Attach)
}
