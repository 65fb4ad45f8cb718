package session

import (
	"time"

	"github.com/forumhive/gamehub/internal/domain"
	"github.com/forumhive/gamehub/pkg/uid"
)

const maskedRoomCode = "******"

// ConnectionGame is a four-in-a-row session with room privacy tiers and
// spectators. Seat one plays Red, seat two Yellow; the second seat filling
// moves the session from waiting to in progress.
type ConnectionGame struct {
	base
	creator          string
	room             domain.RoomSettings
	status           domain.SessionStatus
	board            [][]domain.Cell
	seats            [2]string
	turn             int // seat index to move
	moves            []domain.MoveRecord
	winners          []string
	winningPositions []domain.Position
	spectators       []string
	createdAt        time.Time
}

// NewConnectionGame builds a waiting room. The room code is generated once
// here for non-public rooms and never changes afterwards.
func NewConnectionGame(id, creator string, room domain.RoomSettings) *ConnectionGame {
	if room.Privacy == domain.PrivacyPublic {
		room.RoomCode = ""
	} else if room.RoomCode == "" {
		room.RoomCode = uid.NewRoomCode()
	}

	return &ConnectionGame{
		base: base{
			id:       id,
			gameType: domain.GameConnection,
		},
		creator:   creator,
		room:      room,
		status:    domain.StatusWaiting,
		board:     domain.NewBoard(),
		createdAt: time.Now(),
	}
}

func (g *ConnectionGame) Creator() string {
	return g.creator
}

func (g *ConnectionGame) Room() domain.RoomSettings {
	return g.room
}

func (g *ConnectionGame) Join(identity string) (*domain.SessionModel, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.joinLocked(identity, func() error { return g.seatLocked(identity) }); err != nil {
		return nil, err
	}
	return g.exportLocked(), nil
}

func (g *ConnectionGame) seatLocked(identity string) error {
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

func (g *ConnectionGame) Leave(identity string) (*domain.SessionModel, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.leaveLocked(identity, func() error { g.vacateLocked(identity); return nil }); err != nil {
		return nil, err
	}
	return g.exportLocked(), nil
}

func (g *ConnectionGame) vacateLocked(identity string) {
	switch g.status {
	case domain.StatusWaiting:
		for i := range g.seats {
			if g.seats[i] == identity {
				g.seats[i] = ""
			}
		}
		// seat compaction: a lone remaining player always sits in seat one
		if g.seats[0] == "" && g.seats[1] != "" {
			g.seats[0], g.seats[1] = g.seats[1], ""
		}

	case domain.StatusInProgress:
		g.status = domain.StatusOver
		if opponent := g.opponentOfLocked(identity); opponent != "" {
			g.winners = []string{opponent}
		}

	case domain.StatusOver:
		// nothing left to resolve, only membership bookkeeping
	}
}

func (g *ConnectionGame) opponentOfLocked(identity string) string {
	if g.seats[0] == identity {
		return g.seats[1]
	}
	if g.seats[1] == identity {
		return g.seats[0]
	}
	return ""
}

func (g *ConnectionGame) seatOfLocked(identity string) int {
	for i := range g.seats {
		if g.seats[i] == identity {
			return i
		}
	}
	return -1
}

func (g *ConnectionGame) ApplyMove(identity string, mv domain.Move) (*domain.SessionModel, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status != domain.StatusInProgress {
		return nil, domain.ErrNotInProgress
	}

	seat := g.seatOfLocked(identity)
	if seat == -1 {
		return nil, ErrNotInGame
	}
	if seat != g.turn {
		return nil, domain.ErrNotYourTurn
	}
	if !domain.IsValidColumn(mv.Column) {
		return nil, domain.ErrInvalidMove
	}

	row, err := domain.DropDisc(g.board, mv.Column, seatCell(seat))
	if err != nil {
		return nil, err
	}

	g.moves = append(g.moves, domain.MoveRecord{
		Identity: identity,
		Column:   mv.Column,
		Row:      row,
	})

	if run, won := domain.CheckWin(g.board, row, mv.Column, seatCell(seat)); won {
		g.status = domain.StatusOver
		g.winners = []string{identity}
		g.winningPositions = run
	} else if domain.IsBoardFull(g.board) {
		g.status = domain.StatusOver
		g.winners = []string{}
	} else {
		g.turn = 1 - g.turn
	}

	return g.exportLocked(), nil
}

func (g *ConnectionGame) AddSpectator(identity string) (*domain.SessionModel, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.room.AllowSpectators {
		return nil, ErrSpectatorsDisabled
	}
	if g.room.Privacy == domain.PrivacyPrivate {
		return nil, ErrPrivateSpectating
	}
	for _, s := range g.spectators {
		if s == identity {
			return nil, ErrAlreadySpectating
		}
	}
	if g.hasPlayerLocked(identity) {
		return nil, ErrPlayerSpectating
	}

	g.spectators = append(g.spectators, identity)
	return g.exportLocked(), nil
}

// RemoveSpectator is idempotent; removing an absent spectator is a no-op.
func (g *ConnectionGame) RemoveSpectator(identity string) *domain.SessionModel {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i, s := range g.spectators {
		if s == identity {
			g.spectators = append(g.spectators[:i], g.spectators[i+1:]...)
			break
		}
	}
	return g.exportLocked()
}

// VerifyAccess resolves the privacy tier for a join request. Friends-only
// rooms open to a matching code or to requesters whose friend list contains
// the room creator.
func (g *ConnectionGame) VerifyAccess(roomCode string, friends []string) bool {
	switch g.room.Privacy {
	case domain.PrivacyPublic:
		return true
	case domain.PrivacyPrivate:
		return roomCode == g.room.RoomCode
	case domain.PrivacyFriendsOnly:
		if roomCode == g.room.RoomCode {
			return true
		}
		for _, f := range friends {
			if f == g.creator {
				return true
			}
		}
	}
	return false
}

// CodeMatches reports whether the supplied code opens this room directly.
func (g *ConnectionGame) CodeMatches(roomCode string) bool {
	return roomCode == g.room.RoomCode
}

// PublicRoomInfo projects the session for the lobby listing. Non-public
// room codes are masked; public rooms have no code at all.
func (g *ConnectionGame) PublicRoomInfo() domain.RoomInfo {
	g.mu.Lock()
	defer g.mu.Unlock()

	code := ""
	if g.room.Privacy != domain.PrivacyPublic {
		code = maskedRoomCode
	}

	return domain.RoomInfo{
		SessionID:       g.id,
		RoomName:        g.room.RoomName,
		Privacy:         g.room.Privacy,
		RoomCode:        code,
		Status:          g.status,
		Players:         g.playersLocked(),
		SpectatorCount:  len(g.spectators),
		AllowSpectators: g.room.AllowSpectators,
		CreatedAt:       g.createdAt,
	}
}

func (g *ConnectionGame) ExportModel() *domain.SessionModel {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.exportLocked()
}

func (g *ConnectionGame) exportLocked() *domain.SessionModel {
	room := g.room
	model := &domain.SessionModel{
		SessionID:  g.id,
		GameType:   g.gameType,
		Status:     g.status,
		Players:    g.playersLocked(),
		Moves:      append([]domain.MoveRecord(nil), g.moves...),
		TotalMoves: len(g.moves),
		Board:      domain.CopyBoard(g.board),
		Room:       &room,
		CreatedAt:  g.createdAt,
	}
	if len(g.spectators) > 0 {
		model.Spectators = append([]string(nil), g.spectators...)
	}
	if g.status == domain.StatusInProgress {
		model.CurrentTurn = g.seats[g.turn]
	}
	if g.winners != nil {
		model.Winners = append([]string{}, g.winners...)
	}
	if len(g.winningPositions) > 0 {
		model.WinningPositions = append([]domain.Position(nil), g.winningPositions...)
	}
	return model
}

func seatCell(seat int) domain.Cell {
	if seat == 0 {
		return domain.Red
	}
	return domain.Yellow
}
