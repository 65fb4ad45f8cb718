package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/forumhive/gamehub/internal/domain"
	"github.com/forumhive/gamehub/internal/session"
)

// RoomsHandler serves the live public room listing over plain HTTP, for
// lobby pages that poll instead of holding a websocket.
type RoomsHandler struct {
	Registry *session.Registry
}

func NewRoomsHandler(reg *session.Registry) *RoomsHandler {
	return &RoomsHandler{Registry: reg}
}

type roomListResponse struct {
	Rooms []domain.RoomInfo `json:"rooms"`
}

func (h *RoomsHandler) GetRooms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(roomListResponse{Rooms: h.Registry.PublicRooms()})
}

// Health is the liveness probe.
func Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
