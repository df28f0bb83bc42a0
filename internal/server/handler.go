package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/augustawind/conway-web/pkg/sim"
)

const (
	// Time allowed to write a frame to the peer.
	writeWait = 10 * time.Second

	// Maximum command size allowed from the peer.
	maxMessageSize = 64 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Dev server: the client page may be served from anywhere.
		return true
	},
}

// Handler owns websocket upgrades and the per-connection session loop.
type Handler struct {
	manager *Manager
	factory sim.Factory
}

// NewHandler creates a websocket handler that builds a fresh simulator for
// each connection using factory.
func NewHandler(manager *Manager, factory sim.Factory) *Handler {
	return &Handler{
		manager: manager,
		factory: factory,
	}
}

// HandleConnection upgrades the request and runs the session loop until the
// client goes away. Each connection gets its own GameSession; the server only
// ever writes in response to a received command, so a single goroutine both
// reads and writes.
func (h *Handler) HandleConnection(w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	id := h.manager.Register(conn)
	session := NewGameSession(id, h.factory())

	defer func() {
		h.manager.Unregister(id)
		conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)

	session.Greet()
	if err := h.flush(conn, session); err != nil {
		log.Printf("session %s: failed to send greeting: %v", id, err)
		return nil
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("session %s: read error: %v", id, err)
			}
			return nil
		}

		session.HandleRaw(data)
		if err := h.flush(conn, session); err != nil {
			log.Printf("session %s: write error: %v", id, err)
			return nil
		}
	}
}

func (h *Handler) flush(conn *websocket.Conn, session *GameSession) error {
	frame, err := session.Flush()
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, frame)
}
