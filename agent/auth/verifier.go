// Package auth provides credential verifiers for the session engine.
package auth

import (
	"golang.org/x/crypto/bcrypt"

	contractx "github.com/bankbot/bankbot/agent/contract"
)

// Plain compares the stored secret and the supplied credential byte for
// byte: exact match, case-sensitive. This mirrors the source data set,
// which stores secrets in the clear. There is no lockout or throttling;
// a rate-limiting policy would wrap a verifier here.
type Plain struct{}

var _ contractx.CredentialVerifier = Plain{}

func (Plain) Verify(stored, supplied string) bool {
	return stored == supplied
}

// Bcrypt treats the stored secret as a bcrypt hash. For deployments whose
// user source carries hashes instead of clear text.
type Bcrypt struct{}

var _ contractx.CredentialVerifier = Bcrypt{}

func (Bcrypt) Verify(stored, supplied string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
}
