package security

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

const resetTokenLength = 32

// NewResetToken returns a raw token for the user and the digest to persist.
// Only the digest is stored so a leaked row cannot be replayed.
func NewResetToken() (raw string, digest string, err error) {
	raw, err = RandomString(resetTokenLength, tokenAlphabet)
	if err != nil {
		return "", "", err
	}
	return raw, DigestResetToken(raw), nil
}

func DigestResetToken(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	sum := sha256.Sum256([]byte("baseapp.reset-password.v1:" + trimmed))
	return hex.EncodeToString(sum[:])
}

// ResetTokenMatches compares in constant time; empty values never match.
func ResetTokenMatches(raw string, storedDigest string) bool {
	candidate := DigestResetToken(raw)
	if candidate == "" || strings.TrimSpace(storedDigest) == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(storedDigest)) == 1
}
