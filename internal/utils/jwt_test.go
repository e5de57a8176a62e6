package utils

import (
	"testing"
	"time"
)

func TestIssueAndParseSessionToken(t *testing.T) {
	t.Parallel()

	manager := JWTManager{Secret: []byte("super-secret"), Issuer: "trekora", SessionTTL: time.Hour}

	signed, ttl, err := manager.IssueSessionToken("user-1", "traveler@example.com", "sess-1")
	if err != nil {
		t.Fatalf("IssueSessionToken error: %v", err)
	}
	if ttl != time.Hour {
		t.Fatalf("ttl = %v, want 1h", ttl)
	}

	claims, err := manager.ParseSessionToken(signed)
	if err != nil {
		t.Fatalf("ParseSessionToken error: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "traveler@example.com" || claims.SessionID != "sess-1" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestParseSessionToken_Expired(t *testing.T) {
	t.Parallel()

	manager := JWTManager{Secret: []byte("secret"), SessionTTL: -time.Second}
	signed, _, err := manager.IssueSessionToken("u1", "a@b.com", "s1")
	if err != nil {
		t.Fatalf("IssueSessionToken error: %v", err)
	}

	if _, err := manager.ParseSessionToken(signed); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestParseSessionToken_WrongSecret(t *testing.T) {
	t.Parallel()

	manager := JWTManager{Secret: []byte("right-secret"), SessionTTL: time.Hour}
	signed, _, err := manager.IssueSessionToken("u1", "a@b.com", "s1")
	if err != nil {
		t.Fatalf("IssueSessionToken error: %v", err)
	}

	other := JWTManager{Secret: []byte("wrong-secret")}
	if _, err := other.ParseSessionToken(signed); err == nil {
		t.Fatal("expected error for token signed with another secret")
	}
}

func TestParseSessionToken_Malformed(t *testing.T) {
	t.Parallel()

	manager := JWTManager{Secret: []byte("k")}
	if _, err := manager.ParseSessionToken("not.a.jwt"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestIssueSessionToken_DefaultTTL(t *testing.T) {
	t.Parallel()

	manager := JWTManager{Secret: []byte("k")}
	_, ttl, err := manager.IssueSessionToken("u1", "a@b.com", "s1")
	if err != nil {
		t.Fatalf("IssueSessionToken error: %v", err)
	}
	if ttl != 7*24*time.Hour {
		t.Fatalf("default ttl = %v, want 7d", ttl)
	}
}
