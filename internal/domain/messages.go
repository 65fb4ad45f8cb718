package domain

// ClientMessage is a message received from a websocket client.
type ClientMessage struct {
	Type        string        `json:"type"`
	JWT         string        `json:"jwt,omitempty"`
	GameType    GameType      `json:"game_type,omitempty"`
	Room        *RoomSettings `json:"room,omitempty"`
	SessionID   string        `json:"session_id,omitempty"`
	RoomCode    string        `json:"room_code,omitempty"`
	AsSpectator bool          `json:"as_spectator,omitempty"`
	Column      int           `json:"column,omitempty"`
	Take        int           `json:"take,omitempty"`
}

// ServerMessage is a message sent to a websocket client.
type ServerMessage struct {
	Type      string        `json:"type"`
	Message   string        `json:"message,omitempty"`
	SessionID string        `json:"session_id,omitempty"`
	Model     *SessionModel `json:"model,omitempty"`
	Rooms     []RoomInfo    `json:"rooms,omitempty"`
}
