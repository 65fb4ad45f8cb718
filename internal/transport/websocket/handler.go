package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/forumhive/gamehub/internal/domain"
	"github.com/forumhive/gamehub/internal/session"
	"github.com/forumhive/gamehub/pkg/auth"
)

// Handler manages WebSocket dependencies.
type Handler struct {
	ConnManager *ConnectionManager
	Registry    *session.Registry
	Presence    *session.PresenceTracker
	JWTSecret   string
	Upgrader    websocket.Upgrader
}

func NewHandler(cm *ConnectionManager, reg *session.Registry, presence *session.PresenceTracker, jwtSecret string) *Handler {
	return &Handler{
		ConnManager: cm,
		Registry:    reg,
		Presence:    presence,
		JWTSecret:   jwtSecret,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket is the HTTP handler that upgrades the connection.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	h.handleConnection(conn)
}

// handleConnection manages the lifecycle of a single WebSocket connection.
func (h *Handler) handleConnection(conn *websocket.Conn) {
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))

	// keep-alive pinger
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(10*time.Second)); err != nil {
					return
				}
			}
		}
	}()

	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	// 1. Wait for initialization (auth)
	_, data, err := conn.ReadMessage()
	if err != nil {
		log.Printf("[WS] Read error during init: %v", err)
		conn.Close()
		return
	}

	var message domain.ClientMessage
	if err := json.Unmarshal(data, &message); err != nil {
		log.Printf("[WS] Invalid JSON during init: %v", err)
		conn.Close()
		return
	}

	if message.Type != "init" || message.JWT == "" {
		log.Printf("[WS] Missing initialization or token")
		conn.Close()
		return
	}

	claims, err := auth.ValidateToken(h.JWTSecret, message.JWT)
	if err != nil {
		log.Printf("[WS] Invalid token during init: %v", err)
		conn.WriteJSON(domain.ServerMessage{Type: "error", Message: "Invalid token"})
		conn.Close()
		return
	}

	identity := claims.Identity
	connectionID := uuid.New().String()

	log.Printf("[WS] Connection %s initialized for %s", connectionID, identity)

	h.ConnManager.Add(connectionID, conn, identity)
	h.ConnManager.Subscribe(connectionID, session.LobbyChannel)
	h.ConnManager.Send(connectionID, domain.ServerMessage{Type: "ready"})

	// 2. Cleanup on exit: release every role this connection held. Cleanup
	// for one session never blocks the others.
	defer func() {
		log.Printf("[WS] Connection %s closed for %s", connectionID, identity)
		roles := h.Presence.Drop(connectionID)
		h.Registry.DisconnectCleanup(roles)
		h.ConnManager.Remove(connectionID)
	}()

	// 3. Main message loop
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] %s disconnected unexpectedly: %v", identity, err)
			}
			break
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[WS] Invalid message format from %s: %v", identity, err)
			continue
		}

		h.processMessage(connectionID, identity, msg)
	}
}

// processMessage routes specific actions. Failures are reported to the
// acting connection only; state updates reach everyone via broadcasts.
func (h *Handler) processMessage(connectionID, identity string, msg domain.ClientMessage) {
	ctx := context.Background()

	switch msg.Type {
	case "create_session":
		model, err := h.Registry.Create(ctx, msg.GameType, identity, msg.Room)
		if err != nil {
			h.sendError(connectionID, err)
			return
		}
		h.Presence.Track(connectionID, model.SessionID, identity, false)
		h.ConnManager.Subscribe(connectionID, session.SessionChannel(model.SessionID))
		h.ConnManager.Send(connectionID, domain.ServerMessage{
			Type:      "session_created",
			SessionID: model.SessionID,
			Model:     model,
		})

	case "join_session":
		model, err := h.Registry.Join(ctx, msg.SessionID, identity, msg.RoomCode, msg.AsSpectator)
		if err != nil {
			h.sendError(connectionID, err)
			return
		}
		h.Presence.Track(connectionID, msg.SessionID, identity, msg.AsSpectator)
		h.ConnManager.Subscribe(connectionID, session.SessionChannel(msg.SessionID))
		h.ConnManager.Send(connectionID, domain.ServerMessage{
			Type:      "session_joined",
			SessionID: msg.SessionID,
			Model:     model,
		})

	case "leave_session":
		model, err := h.Registry.Leave(msg.SessionID, identity, msg.AsSpectator)
		if err != nil {
			h.sendError(connectionID, err)
			return
		}
		h.Presence.Untrack(connectionID, msg.SessionID)
		h.ConnManager.Unsubscribe(connectionID, session.SessionChannel(msg.SessionID))
		h.ConnManager.Send(connectionID, domain.ServerMessage{
			Type:      "session_left",
			SessionID: msg.SessionID,
			Model:     model,
		})

	case "make_move":
		_, err := h.Registry.ApplyMove(msg.SessionID, identity, domain.Move{
			Column: msg.Column,
			Take:   msg.Take,
		})
		if err != nil {
			h.sendError(connectionID, err)
		}

	case "list_rooms":
		h.ConnManager.Send(connectionID, domain.ServerMessage{
			Type:  "room_list",
			Rooms: h.Registry.PublicRooms(),
		})

	default:
		h.ConnManager.Send(connectionID, domain.ServerMessage{Type: "error", Message: "unknown message type"})
	}
}

func (h *Handler) sendError(connectionID string, err error) {
	h.ConnManager.Send(connectionID, domain.ServerMessage{Type: "error", Message: err.Error()})
}
