package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPlainIsExactAndCaseSensitive(t *testing.T) {
	t.Parallel()

	v := Plain{}
	if !v.Verify("abc123", "abc123") {
		t.Fatal("exact match must pass")
	}
	if v.Verify("abc123", "ABC123") {
		t.Fatal("case-insensitive match must fail")
	}
	if v.Verify("abc123", " abc123") {
		t.Fatal("padded credential must fail")
	}
}

func TestBcryptVerifiesHashes(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("abc123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	v := Bcrypt{}
	if !v.Verify(string(hash), "abc123") {
		t.Fatal("matching password must pass")
	}
	if v.Verify(string(hash), "abc124") {
		t.Fatal("wrong password must fail")
	}
}
