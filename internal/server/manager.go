package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// connInfo tracks one live websocket connection.
type connInfo struct {
	ID        string
	Conn      *websocket.Conn
	StartedAt time.Time
}

// Manager is the registry of live connections. Each connection gets a uuid so
// log lines from concurrent sessions can be told apart.
type Manager struct {
	mu    sync.RWMutex
	conns map[string]*connInfo
}

// NewManager creates an empty connection registry.
func NewManager() *Manager {
	return &Manager{
		conns: make(map[string]*connInfo),
	}
}

// Register adds a connection and returns its assigned ID.
func (m *Manager) Register(conn *websocket.Conn) string {
	id := uuid.New().String()
	m.mu.Lock()
	m.conns[id] = &connInfo{
		ID:        id,
		Conn:      conn,
		StartedAt: time.Now(),
	}
	m.mu.Unlock()
	return id
}

// Unregister removes a connection from the registry.
func (m *Manager) Unregister(id string) {
	m.mu.Lock()
	delete(m.conns, id)
	m.mu.Unlock()
}

// Count returns the number of live connections.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.conns)
}

// Close closes every live connection and empties the registry.
func (m *Manager) Close() {
	m.mu.Lock()
	conns := make([]*connInfo, 0, len(m.conns))
	for _, c := range m.conns {
		conns = append(conns, c)
	}
	m.conns = make(map[string]*connInfo)
	m.mu.Unlock()

	for _, c := range conns {
		c.Conn.Close()
	}
}
