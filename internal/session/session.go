package session

import (
	"sync"

	"github.com/forumhive/gamehub/internal/domain"
)

// Session is the lifecycle contract every game implements. Mutating calls
// serialize on the session's own lock and return a snapshot taken inside
// the same critical section, so callers persist and broadcast a state that
// is consistent with the mutation they just made.
type Session interface {
	ID() string
	GameType() domain.GameType
	Players() []string
	Join(identity string) (*domain.SessionModel, error)
	Leave(identity string) (*domain.SessionModel, error)
	ApplyMove(identity string, mv domain.Move) (*domain.SessionModel, error)
	ExportModel() *domain.SessionModel
}

// base carries the player bookkeeping shared by all games. Concrete games
// embed it and supply seat/vacate hooks; base guards the membership
// invariants around them.
type base struct {
	id       string
	gameType domain.GameType
	mu       sync.Mutex
	players  []string
}

func (b *base) ID() string {
	return b.id
}

func (b *base) GameType() domain.GameType {
	return b.gameType
}

func (b *base) Players() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.playersLocked()
}

func (b *base) playersLocked() []string {
	out := make([]string, len(b.players))
	copy(out, b.players)
	return out
}

func (b *base) hasPlayerLocked(identity string) bool {
	for _, p := range b.players {
		if p == identity {
			return true
		}
	}
	return false
}

// joinLocked runs the game-specific seat hook between the shared guards.
// Caller must hold b.mu.
func (b *base) joinLocked(identity string, seat func() error) error {
	if b.hasPlayerLocked(identity) {
		return ErrAlreadyInGame
	}
	if err := seat(); err != nil {
		return err
	}
	b.players = append(b.players, identity)
	return nil
}

// leaveLocked runs the game-specific vacate hook between the shared guards.
// Caller must hold b.mu.
func (b *base) leaveLocked(identity string, vacate func() error) error {
	if !b.hasPlayerLocked(identity) {
		return ErrNotInGame
	}
	if err := vacate(); err != nil {
		return err
	}
	for i, p := range b.players {
		if p == identity {
			b.players = append(b.players[:i], b.players[i+1:]...)
			break
		}
	}
	return nil
}
