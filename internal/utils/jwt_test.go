package utils

import (
	"errors"
	"testing"
	"time"
)

const testSecret = "test-secret"

func TestAuthToken_IssueVerifyRoundTrip(t *testing.T) {
	tok, err := NewAuthToken(testSecret, 42, 3600)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if tok.Token == "" {
		t.Fatal("empty token")
	}
	if remaining := time.Until(tok.Exp); remaining < 59*time.Minute {
		t.Fatalf("expiry too soon: %s remaining", remaining)
	}
	id, err := VerifyAuthToken(testSecret, tok.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id != 42 {
		t.Fatalf("want identity 42, got %d", id)
	}
}

func TestAuthToken_WrongSecret(t *testing.T) {
	tok, err := NewAuthToken(testSecret, 7, 3600)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := VerifyAuthToken("other-secret", tok.Token); !errors.Is(err, ErrTokenSignature) {
		t.Fatalf("want ErrTokenSignature, got %v", err)
	}
}

func TestAuthToken_Expired(t *testing.T) {
	tok, err := NewAuthToken(testSecret, 7, -1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := VerifyAuthToken(testSecret, tok.Token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("want ErrTokenExpired, got %v", err)
	}
}

func TestAuthToken_Malformed(t *testing.T) {
	for _, raw := range []string{"", "bad", "a.b.c"} {
		if _, err := VerifyAuthToken(testSecret, raw); !errors.Is(err, ErrTokenMalformed) {
			t.Fatalf("raw %q: want ErrTokenMalformed, got %v", raw, err)
		}
	}
}

func TestAuthToken_DefaultTTLScale(t *testing.T) {
	// 360000 seconds is the TTL the service has always shipped with.
	tok, err := NewAuthToken(testSecret, 1, 360000)
	if err != nil {
		t.Fatal(err)
	}
	want := time.Now().Add(100 * time.Hour)
	if tok.Exp.Before(want.Add(-time.Minute)) || tok.Exp.After(want.Add(time.Minute)) {
		t.Fatalf("expiry %s not ~100h out", tok.Exp)
	}
}
