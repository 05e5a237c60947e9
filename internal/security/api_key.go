package security

import (
	"crypto/sha1"
	"encoding/hex"
	"math/rand/v2"
	"strconv"
	"time"
)

const (
	apiKeyFragmentStart  = 1
	apiKeyFragmentLength = 10
	apiKeyRandomCeiling  = 12345678
)

// APIKey builds the opaque per-user key: the owner's identifier followed by
// ten hex characters taken from offset 1 of a SHA-1 over the time and a random
// integer. The key is not a credential secret and is not unique by
// construction; uniqueness comes from identity.
func APIKey(identity string, now time.Time) string {
	return identity + APIKeyFragment(now, rand.IntN(apiKeyRandomCeiling))
}

// APIKeyFragment is the deterministic part of APIKey, split out for tests.
func APIKeyFragment(now time.Time, salt int) string {
	digest := sha1.Sum([]byte(now.String() + strconv.Itoa(salt)))
	hexDigest := hex.EncodeToString(digest[:])
	return hexDigest[apiKeyFragmentStart : apiKeyFragmentStart+apiKeyFragmentLength]
}
