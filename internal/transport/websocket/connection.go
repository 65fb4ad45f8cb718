package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/forumhive/gamehub/internal/domain"
)

// ConnectionManager handles active WebSocket connections thread-safely and
// implements the engine's Broadcaster: connections subscribe to named
// channels (one per session, plus the lobby) and receive every message
// published there.
type ConnectionManager struct {
	connections map[string]*websocket.Conn
	identities  map[string]string

	// writeMu ensures only one goroutine writes to a specific socket at a
	// time. conn.WriteJSON is not safe for concurrent use.
	writeMu map[string]*sync.Mutex

	channels map[string]map[string]struct{} // channel -> connectionIDs

	mu sync.RWMutex // protects the maps themselves
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*websocket.Conn),
		identities:  make(map[string]string),
		writeMu:     make(map[string]*sync.Mutex),
		channels:    make(map[string]map[string]struct{}),
	}
}

// Add registers a new connection and initializes its write lock.
func (cm *ConnectionManager) Add(connectionID string, conn *websocket.Conn, identity string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	cm.connections[connectionID] = conn
	cm.identities[connectionID] = identity
	cm.writeMu[connectionID] = &sync.Mutex{}
}

// Remove closes and forgets a connection, including every channel
// subscription it held.
func (cm *ConnectionManager) Remove(connectionID string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if conn, exists := cm.connections[connectionID]; exists {
		conn.Close()
		delete(cm.connections, connectionID)
		delete(cm.identities, connectionID)
		delete(cm.writeMu, connectionID)
	}
	for channel, subs := range cm.channels {
		delete(subs, connectionID)
		if len(subs) == 0 {
			delete(cm.channels, channel)
		}
	}
}

func (cm *ConnectionManager) Subscribe(connectionID, channel string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if _, exists := cm.connections[connectionID]; !exists {
		return
	}
	subs, exists := cm.channels[channel]
	if !exists {
		subs = make(map[string]struct{})
		cm.channels[channel] = subs
	}
	subs[connectionID] = struct{}{}
}

func (cm *ConnectionManager) Unsubscribe(connectionID, channel string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if subs, exists := cm.channels[channel]; exists {
		delete(subs, connectionID)
		if len(subs) == 0 {
			delete(cm.channels, channel)
		}
	}
}

// Identity returns the identity a connection authenticated as.
func (cm *ConnectionManager) Identity(connectionID string) (string, bool) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	identity, exists := cm.identities[connectionID]
	return identity, exists
}

// Send writes a JSON message to one connection under its write lock.
func (cm *ConnectionManager) Send(connectionID string, message domain.ServerMessage) error {
	cm.mu.RLock()
	conn, exists := cm.connections[connectionID]
	mu, muExists := cm.writeMu[connectionID]
	cm.mu.RUnlock()

	if !exists || !muExists {
		return nil // connection already gone, ignore
	}

	mu.Lock()
	defer mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteJSON(message)
}

// Broadcast delivers a message to every subscriber of a channel. Sends run
// in goroutines so one slow client doesn't stall the rest.
func (cm *ConnectionManager) Broadcast(channel string, message domain.ServerMessage) {
	cm.mu.RLock()
	subscribers := make([]string, 0, len(cm.channels[channel]))
	for connectionID := range cm.channels[channel] {
		subscribers = append(subscribers, connectionID)
	}
	cm.mu.RUnlock()

	for _, connectionID := range subscribers {
		go func(id string) {
			cm.Send(id, message)
		}(connectionID)
	}
}
