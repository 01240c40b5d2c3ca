package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "secret1" {
		t.Fatal("hash equals plaintext")
	}
	if !VerifyPassword(hash, "secret1") {
		t.Fatal("verify rejected the original password")
	}
	if VerifyPassword(hash, "secret2") {
		t.Fatal("verify accepted a different password")
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	h1, err := HashPassword("same-password", bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	h2, err := HashPassword("same-password", bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password are identical; salt is not randomized")
	}
	if !VerifyPassword(h1, "same-password") || !VerifyPassword(h2, "same-password") {
		t.Fatal("both salted hashes must verify the same password")
	}
}

func TestVerifyPassword_CrossHashes(t *testing.T) {
	h, err := HashPassword("alpha", bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	if VerifyPassword(h, "beta") {
		t.Fatal("hash of one secret verified another")
	}
}
