package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/skillsenselab/authkit/random"
)

// DefaultTokenBytes is the entropy drawn for opaque tokens: 32 bytes,
// hex-encoded to 64 characters.
const DefaultTokenBytes = 32

// GenerateToken creates an opaque random token of the given byte length,
// hex encoded. Opaque tokens back flows that outlive a signed session:
// password resets, email verification, API keys.
func GenerateToken(length int) (string, error) {
	token, err := random.Hex(length)
	if err != nil {
		return "", fmt.Errorf("password: generate token: %w", err)
	}
	return token, nil
}

// GenerateTokenWithDigest creates an opaque token together with its SHA-256
// digest. Persist the digest and hand the token to the caller; the raw token
// never needs to touch storage.
func GenerateTokenWithDigest(length int) (token, digest string, err error) {
	token, err = GenerateToken(length)
	if err != nil {
		return "", "", err
	}
	return token, Digest(token), nil
}

// Digest returns the lowercase SHA-256 hex digest of token.
func Digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// DigestEqual reports whether token hashes to the stored digest.
// The comparison is constant time in the digest length.
func DigestEqual(digest, token string) bool {
	return subtle.ConstantTimeCompare([]byte(digest), []byte(Digest(token))) == 1
}
