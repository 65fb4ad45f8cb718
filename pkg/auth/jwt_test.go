package auth

import (
	"testing"
	"time"
)

const testSecret = "test-secret-key"

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(testSecret, "alice", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ValidateToken(testSecret, token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Identity != "alice" {
		t.Errorf("identity = %q, want alice", claims.Identity)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(testSecret, "alice", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ValidateToken("a-different-secret", token); err == nil {
		t.Error("token signed with another secret validated")
	}
}

func TestTokenExpired(t *testing.T) {
	token, err := GenerateToken(testSecret, "alice", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ValidateToken(testSecret, token); err == nil {
		t.Error("expired token validated")
	}
}

func TestTokenGarbage(t *testing.T) {
	if _, err := ValidateToken(testSecret, "not-a-token"); err == nil {
		t.Error("malformed token validated")
	}
}
