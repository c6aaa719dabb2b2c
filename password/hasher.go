// Package password provides password hashing, verification, and strength
// policy utilities.
//
// A Hasher turns a plaintext password into a salted one-way hash and
// checks candidates against stored hashes. Two implementations ship:
// bcrypt (the default) and argon2id. Verification reports only a boolean;
// wrong passwords, malformed hashes, and algorithm mismatches are
// indistinguishable to callers, so a stored hash never acts as an oracle.
// Hashing enforces no strength rules; see Policy for those.
//
//	hasher := password.NewBcryptHasher()
//	hash, err := hasher.Hash("my-password")
//	ok := hasher.Verify("my-password", hash)
package password

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillsenselab/authkit/errors"
	"github.com/skillsenselab/authkit/random"
)

// Hasher is the password hashing and verification contract. Callers pick
// an implementation; stored hashes are self-describing.
type Hasher interface {
	// Hash returns a salted, one-way hashed representation of the password.
	// Two calls with the same input produce different hashes.
	Hash(password string) (string, error)

	// Verify checks if a password matches the given hash. It returns false
	// for wrong passwords and for hashes this hasher cannot parse.
	Verify(password, hash string) bool

	// NeedsRehash reports whether the hash was produced with a different
	// algorithm or weaker parameters than currently configured and should
	// be regenerated on next successful login.
	NeedsRehash(hash string) bool
}

// --- Bcrypt hasher ---

// BcryptHasher is the bcrypt-backed Hasher.
type BcryptHasher struct {
	cost int
}

// BcryptOption tunes a BcryptHasher.
type BcryptOption func(*BcryptHasher)

// WithCost sets the bcrypt work factor. Values outside the library's
// 4 to 31 range are ignored.
func WithCost(cost int) BcryptOption {
	return func(h *BcryptHasher) {
		if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return
		}
		h.cost = cost
	}
}

// NewBcryptHasher builds a bcrypt hasher at the default cost.
func NewBcryptHasher(opts ...BcryptOption) *BcryptHasher {
	h := &BcryptHasher{cost: DefaultBcryptCost}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	if len(password) > 72 {
		return "", errors.InvalidParameter("password", "exceeds 72 bytes (bcrypt limit)")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("password: hash: %w", err)
	}
	return string(hash), nil
}

func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (h *BcryptHasher) NeedsRehash(hash string) bool {
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return true
	}
	return cost != h.cost
}

// --- Argon2id hasher ---

// Key and salt sizes used for argon2id output; fixed, not configurable.
const (
	argonKeyLen  = 32
	argonSaltLen = 16
)

// Argon2Hasher is the argon2id-backed Hasher.
type Argon2Hasher struct {
	time    uint32
	memory  uint32
	threads uint8
	keyLen  uint32
	saltLen int
}

// Argon2Option tunes an Argon2Hasher.
type Argon2Option func(*Argon2Hasher)

// WithArgon2Time sets the iteration count.
func WithArgon2Time(iterations uint32) Argon2Option {
	return func(h *Argon2Hasher) { h.time = iterations }
}

// WithArgon2Memory sets the memory cost in KiB.
func WithArgon2Memory(kib uint32) Argon2Option {
	return func(h *Argon2Hasher) { h.memory = kib }
}

// WithArgon2Threads sets the lane count.
func WithArgon2Threads(lanes uint8) Argon2Option {
	return func(h *Argon2Hasher) { h.threads = lanes }
}

// NewArgon2Hasher builds an argon2id hasher. The defaults follow the
// OWASP recommendation of one pass over 64 MiB with four lanes.
func NewArgon2Hasher(opts ...Argon2Option) *Argon2Hasher {
	h := &Argon2Hasher{
		time:    DefaultArgon2Time,
		memory:  DefaultArgon2Memory,
		threads: DefaultArgon2Threads,
		keyLen:  argonKeyLen,
		saltLen: argonSaltLen,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Argon2Hasher) Hash(password string) (string, error) {
	salt, err := random.Bytes(h.saltLen)
	if err != nil {
		return "", fmt.Errorf("password: generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(password), salt, h.time, h.memory, h.threads, h.keyLen)
	return h.encode(salt, key), nil
}

// encode renders the PHC string $argon2id$v=19$m=M,t=T,p=P$SALT$KEY.
func (h *Argon2Hasher) encode(salt, key []byte) string {
	b64 := base64.RawStdEncoding.EncodeToString
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.memory, h.time, h.threads, b64(salt), b64(key))
}

func (h *Argon2Hasher) Verify(password, encodedHash string) bool {
	version, memory, time, threads, salt, expectedHash, ok := decodeArgon2(encodedHash)
	if !ok || version != argon2.Version {
		return false
	}

	hash := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(expectedHash)))

	return subtle.ConstantTimeCompare(hash, expectedHash) == 1
}

func (h *Argon2Hasher) NeedsRehash(encodedHash string) bool {
	version, memory, time, threads, _, _, ok := decodeArgon2(encodedHash)
	if !ok {
		return true
	}
	return version != argon2.Version || memory != h.memory || time != h.time || threads != h.threads
}

// decodeArgon2 parses a $argon2id$v=V$m=M,t=T,p=P$SALT$HASH string.
func decodeArgon2(encodedHash string) (version int, memory, time uint32, threads uint8, salt, hash []byte, ok bool) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return 0, 0, 0, 0, nil, nil, false
	}
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return 0, 0, 0, 0, nil, nil, false
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return 0, 0, 0, 0, nil, nil, false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return 0, 0, 0, 0, nil, nil, false
	}
	hash, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return 0, 0, 0, 0, nil, nil, false
	}
	return version, memory, time, threads, salt, hash, true
}
