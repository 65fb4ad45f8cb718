package domain

// GameType tags a session with the rules it runs under.
type GameType string

const (
	GameConnection GameType = "connection_four"
	GameCounting   GameType = "counting"
)

// SessionStatus tracks the session lifecycle. StatusOver is terminal.
type SessionStatus string

const (
	StatusWaiting    SessionStatus = "waiting_to_start"
	StatusInProgress SessionStatus = "in_progress"
	StatusOver       SessionStatus = "over"
)

// RoomPrivacy controls who may join a connection-game room.
type RoomPrivacy string

const (
	PrivacyPublic      RoomPrivacy = "public"
	PrivacyPrivate     RoomPrivacy = "private"
	PrivacyFriendsOnly RoomPrivacy = "friends_only"
)

// Cell is one board position. Seat one plays Red, seat two Yellow.
type Cell int

const (
	Empty  Cell = 0
	Red    Cell = 1
	Yellow Cell = 2
)

// board dimensions
const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// counting game constants
const (
	InitialPile = 21
	MaxTake     = 3
)

// basic error that can occur during play
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove   Error = "invalid move"
	ErrColumnFull    Error = "column is full"
	ErrNotYourTurn   Error = "not your turn"
	ErrNotInProgress Error = "game is not in progress"
	ErrInvalidTake   Error = "must take between 1 and 3"
	ErrTakeTooLarge  Error = "cannot take more than the pile holds"
)
