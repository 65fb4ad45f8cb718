package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/forumhive/gamehub/internal/domain"
	"github.com/forumhive/gamehub/pkg/uid"
)

// LobbyChannel carries public room-list updates to every lobby subscriber.
const LobbyChannel = "lobby"

// SessionChannel names the broadcast channel for one session's state.
func SessionChannel(sessionID string) string {
	return "session:" + sessionID
}

// FriendLookup resolves the friend relations of an identity. Used only for
// friends-only room access checks.
type FriendLookup interface {
	Friends(ctx context.Context, identity string) ([]string, error)
}

// SnapshotStore durably upserts exported session models.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, model *domain.SessionModel) error
}

// Broadcaster fans a message out to every subscriber of a channel.
type Broadcaster interface {
	Broadcast(channel string, msg domain.ServerMessage)
}

// Registry is the single source of truth for which sessions exist. All
// mutation goes through it so the post-mutation invariants (removal on a
// finished game, removal of an emptied waiting room) are enforced in one
// place. The map has its own lock; each session serializes its own state.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]Session

	friends     FriendLookup
	store       SnapshotStore
	broadcaster Broadcaster
}

func NewRegistry(friends FriendLookup, store SnapshotStore, broadcaster Broadcaster) *Registry {
	return &Registry{
		sessions:    make(map[string]Session),
		friends:     friends,
		store:       store,
		broadcaster: broadcaster,
	}
}

// Create builds a session of the requested type, persists its initial state
// and registers it. A persistence failure here propagates and the session
// is never registered; nothing is visible externally until insertion.
func (r *Registry) Create(ctx context.Context, gameType domain.GameType, creator string, room *domain.RoomSettings) (*domain.SessionModel, error) {
	var s Session

	switch gameType {
	case domain.GameConnection:
		if creator == "" {
			return nil, ErrCreatorRequired
		}
		if room == nil {
			return nil, ErrRoomSettingsRequired
		}
		game := NewConnectionGame(uid.NewSessionID(), creator, *room)
		if _, err := game.Join(creator); err != nil {
			return nil, err
		}
		s = game

	case domain.GameCounting:
		game := NewCountingGame(uid.NewSessionID())
		if creator != "" {
			if _, err := game.Join(creator); err != nil {
				return nil, err
			}
		}
		s = game

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGameType, gameType)
	}

	model := s.ExportModel()
	if err := r.store.SaveSnapshot(ctx, model); err != nil {
		return nil, fmt.Errorf("persist initial state: %w", err)
	}

	r.mu.Lock()
	r.sessions[s.ID()] = s
	r.mu.Unlock()

	log.Printf("[REGISTRY] Created %s session %s (creator=%q)", gameType, s.ID(), creator)

	r.publishLobbyFor(s)
	return model, nil
}

// Get is a pure lookup with no side effects.
func (r *Registry) Get(sessionID string) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.sessions[sessionID]
	return s, exists
}

// Remove deletes the map entry and reports whether one existed.
func (r *Registry) Remove(sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[sessionID]; !exists {
		return false
	}
	log.Printf("[REGISTRY] Removing session %s", sessionID)
	delete(r.sessions, sessionID)
	return true
}

// Reset drops every session. Test isolation only.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = make(map[string]Session)
}

// Join routes a join request to the session, resolving room access first
// for privacy-gated games. A friend-lookup failure is a hard error distinct
// from access denial.
func (r *Registry) Join(ctx context.Context, sessionID, identity, roomCode string, asSpectator bool) (*domain.SessionModel, error) {
	s, exists := r.Get(sessionID)
	if !exists {
		return nil, ErrSessionNotFound
	}

	game, isRoomGame := s.(*ConnectionGame)
	if isRoomGame {
		if err := r.resolveAccess(ctx, game, identity, roomCode); err != nil {
			return nil, err
		}
	}

	var model *domain.SessionModel
	var err error
	if asSpectator {
		if !isRoomGame {
			return nil, ErrSpectatorsUnsupported
		}
		model, err = game.AddSpectator(identity)
	} else {
		model, err = s.Join(identity)
	}
	if err != nil {
		return nil, err
	}

	r.afterMutation(s, model)
	return model, nil
}

func (r *Registry) resolveAccess(ctx context.Context, game *ConnectionGame, identity, roomCode string) error {
	room := game.Room()
	switch room.Privacy {
	case domain.PrivacyPublic:
		return nil

	case domain.PrivacyPrivate:
		if !game.VerifyAccess(roomCode, nil) {
			return ErrPrivateAccess
		}
		return nil

	case domain.PrivacyFriendsOnly:
		if game.CodeMatches(roomCode) {
			return nil
		}
		friends, err := r.friends.Friends(ctx, identity)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrAccessCheck, err)
		}
		if !game.VerifyAccess(roomCode, friends) {
			return ErrFriendsOnlyAccess
		}
		return nil
	}

	return fmt.Errorf("%w: unknown privacy %q", ErrAccessCheck, room.Privacy)
}

// Leave routes a leave request to the session. Spectator removal is an
// idempotent no-op when absent. When the resulting state is over, or the
// last player left a waiting room, the session is dropped from the map.
func (r *Registry) Leave(sessionID, identity string, asSpectator bool) (*domain.SessionModel, error) {
	s, exists := r.Get(sessionID)
	if !exists {
		return nil, ErrSessionNotFound
	}

	var model *domain.SessionModel
	if asSpectator {
		game, isRoomGame := s.(*ConnectionGame)
		if !isRoomGame {
			return nil, ErrSpectatorsUnsupported
		}
		model = game.RemoveSpectator(identity)
	} else {
		var err error
		model, err = s.Leave(identity)
		if err != nil {
			return nil, err
		}
	}

	r.afterMutation(s, model)

	if model.Status == domain.StatusOver || len(model.Players) == 0 {
		r.Remove(sessionID)
		r.publishLobbyFor(s)
	}
	return model, nil
}

// ApplyMove routes a move to the session. A panicking game implementation
// is caught here and turned into a per-caller error so one bad move can
// never take down the process or corrupt other sessions.
func (r *Registry) ApplyMove(sessionID, identity string, mv domain.Move) (model *domain.SessionModel, err error) {
	s, exists := r.Get(sessionID)
	if !exists {
		return nil, ErrSessionNotFound
	}

	func() {
		defer func() {
			if p := recover(); p != nil {
				log.Printf("[REGISTRY] Recovered panic applying move in session %s: %v", sessionID, p)
				err = fmt.Errorf("internal error applying move: %v", p)
			}
		}()
		model, err = s.ApplyMove(identity, mv)
	}()
	if err != nil {
		return nil, err
	}

	r.afterMutation(s, model)

	if model.Status == domain.StatusOver {
		r.Remove(sessionID)
		r.publishLobbyFor(s)
	}
	return model, nil
}

// afterMutation runs the side effects of a successful state transition:
// fire-and-forget persistence, the session-channel broadcast, and a lobby
// refresh for room games. The session lock is already released; both calls
// work off the snapshot taken during the mutation.
func (r *Registry) afterMutation(s Session, model *domain.SessionModel) {
	r.persistAsync(model)
	r.broadcaster.Broadcast(SessionChannel(s.ID()), domain.ServerMessage{
		Type:      "session_state",
		SessionID: s.ID(),
		Model:     model,
	})
	r.publishLobbyFor(s)
}

// persistAsync upserts the snapshot in the background. Failures are logged,
// never surfaced to gameplay; memory stays authoritative.
func (r *Registry) persistAsync(model *domain.SessionModel) {
	go func() {
		if err := r.store.SaveSnapshot(context.Background(), model); err != nil {
			log.Printf("[REGISTRY] Error persisting session %s: %v", model.SessionID, err)
		}
	}()
}

func (r *Registry) publishLobbyFor(s Session) {
	if s.GameType() != domain.GameConnection {
		return
	}
	r.broadcaster.Broadcast(LobbyChannel, domain.ServerMessage{
		Type:  "room_list",
		Rooms: r.PublicRooms(),
	})
}

// PublicRooms lists every live connection-game room with codes redacted,
// oldest first.
func (r *Registry) PublicRooms() []domain.RoomInfo {
	r.mu.RLock()
	games := make([]*ConnectionGame, 0, len(r.sessions))
	for _, s := range r.sessions {
		if game, ok := s.(*ConnectionGame); ok {
			games = append(games, game)
		}
	}
	r.mu.RUnlock()

	rooms := make([]domain.RoomInfo, 0, len(games))
	for _, game := range games {
		rooms = append(rooms, game.PublicRoomInfo())
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].CreatedAt.Before(rooms[j].CreatedAt) })
	return rooms
}

// DisconnectCleanup releases every role a dead connection held. Each
// session is handled independently; a vanished session or a failed leave
// never blocks cleanup of the rest.
func (r *Registry) DisconnectCleanup(roles map[string]Role) {
	for sessionID, role := range roles {
		if _, err := r.Leave(sessionID, role.Identity, role.Spectator); err != nil && !errors.Is(err, ErrSessionNotFound) {
			log.Printf("[REGISTRY] Cleanup leave failed for session %s (identity=%s): %v", sessionID, role.Identity, err)
		}
	}
}

// SweepStale drops waiting rooms older than maxWaiting. Finished sessions
// are removed at the moment they end, so only abandoned waiting rooms can
// accumulate.
func (r *Registry) SweepStale(maxWaiting time.Duration) int {
	now := time.Now()

	r.mu.RLock()
	stale := []string{}
	for id, s := range r.sessions {
		model := s.ExportModel()
		if model.Status == domain.StatusWaiting && now.Sub(model.CreatedAt) > maxWaiting {
			stale = append(stale, id)
		}
	}
	r.mu.RUnlock()

	removed := 0
	for _, id := range stale {
		if r.Remove(id) {
			removed++
		}
	}
	if removed > 0 {
		log.Printf("[REGISTRY] Sweep removed %d stale waiting sessions", removed)
		r.broadcaster.Broadcast(LobbyChannel, domain.ServerMessage{Type: "room_list", Rooms: r.PublicRooms()})
	}
	return removed
}
