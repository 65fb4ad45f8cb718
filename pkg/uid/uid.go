package uid

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
)

// NewSessionID randomly generates a unique session ID.
func NewSessionID() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

const roomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
const roomCodeLength = 6

// NewRoomCode generates a short join code for non-public rooms. The
// alphabet skips easily confused characters (0/O, 1/I).
func NewRoomCode() string {
	code := make([]byte, roomCodeLength)
	max := big.NewInt(int64(len(roomCodeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken
			panic(err)
		}
		code[i] = roomCodeAlphabet[n.Int64()]
	}
	return string(code)
}
