package helpers

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// NewRandomToken returns n random bytes hex-encoded, suitable for email
// verification and password reset links.
func NewRandomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// DigestToken returns the sha256 hex digest of a raw token. Reset tokens are
// stored digested so a leaked database row cannot be replayed.
func DigestToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
