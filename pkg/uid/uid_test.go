package uid

import (
	"strings"
	"testing"
)

func TestNewSessionID(t *testing.T) {
	id := NewSessionID()
	if len(id) != 32 {
		t.Errorf("session ID length = %d, want 32 hex chars", len(id))
	}

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewSessionID()
		if seen[id] {
			t.Fatalf("duplicate session ID %s", id)
		}
		seen[id] = true
	}
}

func TestNewRoomCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := NewRoomCode()
		if len(code) != roomCodeLength {
			t.Fatalf("code length = %d, want %d", len(code), roomCodeLength)
		}
		for _, ch := range code {
			if !strings.ContainsRune(roomCodeAlphabet, ch) {
				t.Fatalf("code %q contains %q outside the alphabet", code, ch)
			}
		}
	}
}
