package auth

import (
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Parallel()

	secret := "access-secret"
	tok, err := NewAccessToken("u-1", "alice@x.com", "alice", "Alice A", secret, time.Hour)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}

	claims, err := ParseAccessToken(tok, secret)
	if err != nil {
		t.Fatalf("ParseAccessToken error: %v", err)
	}
	if claims.UserID != "u-1" {
		t.Fatalf("user id mismatch: got %q want %q", claims.UserID, "u-1")
	}
	if claims.Email != "alice@x.com" || claims.Username != "alice" || claims.FullName != "Alice A" {
		t.Fatalf("identity claims mismatch: %+v", claims)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	t.Parallel()

	tok, err := NewRefreshToken("u-2", "refresh-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewRefreshToken error: %v", err)
	}

	claims, err := ParseRefreshToken(tok, "refresh-secret")
	if err != nil {
		t.Fatalf("ParseRefreshToken error: %v", err)
	}
	if claims.UserID != "u-2" {
		t.Fatalf("user id mismatch: got %q want %q", claims.UserID, "u-2")
	}
	if claims.ID == "" {
		t.Fatal("refresh token missing jti")
	}
}

func TestRefreshTokensAreUnique(t *testing.T) {
	t.Parallel()

	a, err := NewRefreshToken("u-3", "refresh-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewRefreshToken error: %v", err)
	}
	b, err := NewRefreshToken("u-3", "refresh-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewRefreshToken error: %v", err)
	}
	if a == b {
		t.Fatal("two refresh tokens minted back to back are identical")
	}
}

func TestParseAccessToken_Expired(t *testing.T) {
	t.Parallel()

	tok, err := NewAccessToken("u-1", "a@x.com", "a", "A", "s", -time.Second)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}

	if _, err := ParseAccessToken(tok, "s"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParseAccessToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewAccessToken("u-1", "a@x.com", "a", "A", "right", time.Hour)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}

	if _, err := ParseAccessToken(tok, "wrong"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestSecretsAreNotInterchangeable(t *testing.T) {
	t.Parallel()

	refresh, err := NewRefreshToken("u-1", "refresh-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewRefreshToken error: %v", err)
	}

	// A refresh token must not validate against the access secret.
	if _, err := ParseRefreshToken(refresh, "access-secret"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken across secrets, got %v", err)
	}
}

func TestParseRefreshToken_Malformed(t *testing.T) {
	t.Parallel()

	if _, err := ParseRefreshToken("not.a.jwt", "k"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}
