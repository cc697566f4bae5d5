package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("admin123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "admin123" {
		t.Fatalf("hash must not equal plaintext")
	}
	if !VerifyPassword(hash, "admin123") {
		t.Fatalf("expected matching password to verify")
	}
	if VerifyPassword(hash, "admin124") {
		t.Fatalf("expected non-matching password to fail")
	}
}

func TestVerifyPassword_MalformedDigest(t *testing.T) {
	t.Parallel()

	// fails closed instead of raising
	if VerifyPassword("not-a-bcrypt-digest", "whatever") {
		t.Fatalf("malformed digest must verify as false")
	}
}
