package session

import (
	"time"

	"github.com/forumhive/gamehub/internal/domain"
)

// CountingGame is the minimal session: a single shared pile, two seats, and
// subtract-and-pass moves of one to three units. Whoever removes the last
// unit loses and the opponent is the sole winner.
type CountingGame struct {
	base
	status    domain.SessionStatus
	pile      int
	seats     [2]string
	turn      int
	moves     []domain.MoveRecord
	winners   []string
	createdAt time.Time
}

func NewCountingGame(id string) *CountingGame {
	return &CountingGame{
		base: base{
			id:       id,
			gameType: domain.GameCounting,
		},
		status:    domain.StatusWaiting,
		pile:      domain.InitialPile,
		createdAt: time.Now(),
	}
}

func (g *CountingGame) Join(identity string) (*domain.SessionModel, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.joinLocked(identity, func() error { return g.seatLocked(identity) }); err != nil {
		return nil, err
	}
	return g.exportLocked(), nil
}

func (g *CountingGame) seatLocked(identity string) error {
	if g.status != domain.StatusWaiting {
		return ErrJoinClosed
	}

	for i := range g.seats {
		if g.seats[i] == "" {
			g.seats[i] = identity
			if g.seats[0] != "" && g.seats[1] != "" {
				g.status = domain.StatusInProgress
			}
			return nil
		}
	}
	return ErrRoomFull
}

func (g *CountingGame) Leave(identity string) (*domain.SessionModel, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.leaveLocked(identity, func() error { g.vacateLocked(identity); return nil }); err != nil {
		return nil, err
	}
	return g.exportLocked(), nil
}

func (g *CountingGame) vacateLocked(identity string) {
	switch g.status {
	case domain.StatusWaiting:
		for i := range g.seats {
			if g.seats[i] == identity {
				g.seats[i] = ""
			}
		}
		if g.seats[0] == "" && g.seats[1] != "" {
			g.seats[0], g.seats[1] = g.seats[1], ""
		}

	case domain.StatusInProgress:
		g.status = domain.StatusOver
		if opponent := g.opponentOfLocked(identity); opponent != "" {
			g.winners = []string{opponent}
		}

	case domain.StatusOver:
	}
}

func (g *CountingGame) opponentOfLocked(identity string) string {
	if g.seats[0] == identity {
		return g.seats[1]
	}
	if g.seats[1] == identity {
		return g.seats[0]
	}
	return ""
}

func (g *CountingGame) ApplyMove(identity string, mv domain.Move) (*domain.SessionModel, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status != domain.StatusInProgress {
		return nil, domain.ErrNotInProgress
	}

	seat := -1
	for i := range g.seats {
		if g.seats[i] == identity {
			seat = i
		}
	}
	if seat == -1 {
		return nil, ErrNotInGame
	}
	if seat != g.turn {
		return nil, domain.ErrNotYourTurn
	}
	if mv.Take < 1 || mv.Take > domain.MaxTake {
		return nil, domain.ErrInvalidTake
	}
	if mv.Take > g.pile {
		return nil, domain.ErrTakeTooLarge
	}

	g.pile -= mv.Take
	g.moves = append(g.moves, domain.MoveRecord{
		Identity:  identity,
		Take:      mv.Take,
		Remaining: g.pile,
	})

	if g.pile == 0 {
		// taking the last unit loses
		g.status = domain.StatusOver
		g.winners = []string{g.seats[1-seat]}
	} else {
		g.turn = 1 - g.turn
	}

	return g.exportLocked(), nil
}

func (g *CountingGame) ExportModel() *domain.SessionModel {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.exportLocked()
}

func (g *CountingGame) exportLocked() *domain.SessionModel {
	model := &domain.SessionModel{
		SessionID:  g.id,
		GameType:   g.gameType,
		Status:     g.status,
		Players:    g.playersLocked(),
		Moves:      append([]domain.MoveRecord(nil), g.moves...),
		TotalMoves: len(g.moves),
		Pile:       g.pile,
		CreatedAt:  g.createdAt,
	}
	if g.status == domain.StatusInProgress {
		model.CurrentTurn = g.seats[g.turn]
	}
	if g.winners != nil {
		model.Winners = append([]string{}, g.winners...)
	}
	return model
}
