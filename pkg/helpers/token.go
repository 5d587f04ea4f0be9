package helpers

import (
	"crypto/rand"
	"encoding/hex"
)

// VerificationTokenBytes is the entropy of an email verification token.
const VerificationTokenBytes = 32

// TokenIssuer generates opaque email verification tokens.
type TokenIssuer struct{}

func NewTokenIssuer() TokenIssuer { return TokenIssuer{} }

// Issue returns 32 random bytes from crypto/rand as 64 hex characters.
func (TokenIssuer) Issue() (string, error) {
	b := make([]byte, VerificationTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
