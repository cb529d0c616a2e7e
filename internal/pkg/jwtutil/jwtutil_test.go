package jwtutil

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", time.Hour, "sess-1", 42, "alice")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "alice" || claims.SessionID != "sess-1" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", time.Hour, "sess-1", 42, "alice")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := ParseToken("other-secret", token); err != ErrInvalidToken {
		t.Fatalf("got %v, want %v", err, ErrInvalidToken)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	token, err := GenerateToken("secret", -time.Minute, "sess-1", 42, "alice")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := ParseToken("secret", token); err != ErrInvalidToken {
		t.Fatalf("got %v, want %v", err, ErrInvalidToken)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := ParseToken("secret", "not-a-token"); err != ErrInvalidToken {
		t.Fatalf("got %v, want %v", err, ErrInvalidToken)
	}
}
