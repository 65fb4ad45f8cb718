package session

import "sync"

// Role records how one connection participates in one session.
type Role struct {
	Identity  string
	Spectator bool
}

// PresenceTracker keeps per-connection bookkeeping of joined sessions so a
// dropped connection can be cleaned up deterministically. Entries live for
// the duration of one realtime connection.
type PresenceTracker struct {
	mu    sync.Mutex
	conns map[string]map[string]Role // connectionID -> sessionID -> Role
}

func NewPresenceTracker() *PresenceTracker {
	return &PresenceTracker{
		conns: make(map[string]map[string]Role),
	}
}

// Track records that a connection holds a role in a session. Tracking the
// same session again overwrites the previous role.
func (t *PresenceTracker) Track(connectionID, sessionID, identity string, spectator bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	sessions, exists := t.conns[connectionID]
	if !exists {
		sessions = make(map[string]Role)
		t.conns[connectionID] = sessions
	}
	sessions[sessionID] = Role{Identity: identity, Spectator: spectator}
}

// Untrack forgets one session for a connection.
func (t *PresenceTracker) Untrack(connectionID, sessionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if sessions, exists := t.conns[connectionID]; exists {
		delete(sessions, sessionID)
		if len(sessions) == 0 {
			delete(t.conns, connectionID)
		}
	}
}

// Sessions returns a copy of the roles a connection currently holds.
func (t *PresenceTracker) Sessions(connectionID string) map[string]Role {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string]Role, len(t.conns[connectionID]))
	for id, role := range t.conns[connectionID] {
		out[id] = role
	}
	return out
}

// Drop removes the connection's entry entirely and returns what it held,
// so the caller can release each role. Dropping an unknown connection
// returns an empty map.
func (t *PresenceTracker) Drop(connectionID string) map[string]Role {
	t.mu.Lock()
	defer t.mu.Unlock()

	sessions := t.conns[connectionID]
	delete(t.conns, connectionID)
	if sessions == nil {
		return map[string]Role{}
	}
	return sessions
}
