package domain

import "time"

// Position is one cell coordinate on the board.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// RoomSettings configures visibility and spectating for a connection-game
// room. RoomCode is set once at creation and never changes; it is present
// iff the privacy tier is not public.
type RoomSettings struct {
	RoomName        string      `json:"room_name"`
	Privacy         RoomPrivacy `json:"privacy"`
	RoomCode        string      `json:"room_code,omitempty"`
	AllowSpectators bool        `json:"allow_spectators"`
}

// Move is a single move request. Column applies to the connection game,
// Take to the counting game.
type Move struct {
	Column int `json:"column"`
	Take   int `json:"take"`
}

// MoveRecord is one applied move in the session's append-only log.
type MoveRecord struct {
	Identity  string `json:"identity"`
	Column    int    `json:"column,omitempty"`
	Row       int    `json:"row,omitempty"`
	Take      int    `json:"take,omitempty"`
	Remaining int    `json:"remaining,omitempty"`
}

// SessionModel is the read-only, serializable snapshot of a session used
// for persistence and broadcast. Winners is nil while the game is running;
// once the status is over an empty slice denotes a draw.
type SessionModel struct {
	SessionID        string        `json:"session_id"`
	GameType         GameType      `json:"game_type"`
	Status           SessionStatus `json:"status"`
	Players          []string      `json:"players"`
	Spectators       []string      `json:"spectators,omitempty"`
	Moves            []MoveRecord  `json:"moves"`
	TotalMoves       int           `json:"total_moves"`
	CurrentTurn      string        `json:"current_turn,omitempty"`
	Winners          []string      `json:"winners,omitempty"`
	Board            [][]Cell      `json:"board,omitempty"`
	WinningPositions []Position    `json:"winning_positions,omitempty"`
	Room             *RoomSettings `json:"room,omitempty"`
	Pile             int           `json:"pile,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
}

// RoomInfo is the lobby projection of a connection-game session. The room
// code is masked for private and friends-only rooms and omitted for public
// ones, so a listing never leaks a join code.
type RoomInfo struct {
	SessionID       string        `json:"session_id"`
	RoomName        string        `json:"room_name"`
	Privacy         RoomPrivacy   `json:"privacy"`
	RoomCode        string        `json:"room_code,omitempty"`
	Status          SessionStatus `json:"status"`
	Players         []string      `json:"players"`
	SpectatorCount  int           `json:"spectator_count"`
	AllowSpectators bool          `json:"allow_spectators"`
	CreatedAt       time.Time     `json:"created_at"`
}
