package util

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", 7, "session-id-1", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("user id: got %d, want 7", claims.UserID)
	}
	if claims.SessionID != "session-id-1" {
		t.Errorf("session id: got %s, want session-id-1", claims.SessionID)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, _ := GenerateToken("secret", 7, "sid", time.Hour)
	if _, err := ParseToken("other-secret", token); err == nil {
		t.Error("wrong secret should fail")
	}
}

func TestParseTokenTampered(t *testing.T) {
	token, _ := GenerateToken("secret", 7, "sid", time.Hour)
	tampered := token[:len(token)-2] + "xx"
	if _, err := ParseToken("secret", tampered); err == nil {
		t.Error("tampered token should fail")
	}
}
