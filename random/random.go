package random

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"

	"github.com/skillsenselab/authkit/errors"
)

// Bytes returns n cryptographically secure random bytes.
func Bytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, errors.InvalidParameter("n", "must be positive")
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("read random bytes: %w", err)
	}
	return b, nil
}

// Hex returns byteLength random bytes encoded as lowercase hexadecimal.
// The result is 2*byteLength characters long.
func Hex(byteLength int) (string, error) {
	if byteLength <= 0 {
		return "", errors.InvalidParameter("byteLength", "must be positive")
	}
	b, err := Bytes(byteLength)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Intn returns a uniform random int in [0, max).
func Intn(max int) (int, error) {
	if max <= 0 {
		return 0, errors.InvalidParameter("max", "must be positive")
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0, fmt.Errorf("read random int: %w", err)
	}
	return int(n.Int64()), nil
}

// Shuffle permutes items in place using a Fisher-Yates shuffle driven by
// crypto/rand. Slices of length 0 or 1 are left untouched.
func Shuffle[T any](items []T) error {
	for i := len(items) - 1; i > 0; i-- {
		j, err := Intn(i + 1)
		if err != nil {
			return err
		}
		items[i], items[j] = items[j], items[i]
	}
	return nil
}
