package session

import "errors"

// Lifecycle and access errors surfaced by the registry and sessions.
var (
	ErrSessionNotFound      = errors.New("session does not exist")
	ErrAlreadyInGame        = errors.New("already in game")
	ErrNotInGame            = errors.New("not in game")
	ErrRoomFull             = errors.New("room is full")
	ErrJoinClosed           = errors.New("game has already started")
	ErrCreatorRequired      = errors.New("connection game requires a creator identity")
	ErrRoomSettingsRequired = errors.New("connection game requires room settings")
	ErrUnknownGameType      = errors.New("unknown game type")

	ErrPrivateAccess     = errors.New("access denied: invalid room code")
	ErrFriendsOnlyAccess = errors.New("access denied: not in the room creator's friends")
	ErrAccessCheck       = errors.New("could not verify access")

	ErrSpectatorsUnsupported = errors.New("game does not support spectators")
	ErrSpectatorsDisabled    = errors.New("spectating is not allowed in this room")
	ErrPrivateSpectating     = errors.New("private rooms do not allow spectators")
	ErrAlreadySpectating     = errors.New("already spectating")
	ErrPlayerSpectating      = errors.New("seated players cannot spectate")
)
