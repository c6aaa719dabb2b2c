package password

import (
	"strings"

	"github.com/skillsenselab/authkit/errors"
	"github.com/skillsenselab/authkit/random"
)

// Character classes used by both the policy and the generator. The symbol
// class is shared so generated passwords always satisfy the policy.
const (
	lowerChars = "abcdefghijklmnopqrstuvwxyz"
	upperChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars = "0123456789"

	// SymbolSet is the set of symbols the policy accepts and the
	// generator draws from.
	SymbolSet = `!@#$%^&*(),.?":{}|<>`
)

// DefaultMinLength is the minimum password length the policy enforces
// unless overridden.
const DefaultMinLength = 8

// DefaultGeneratedLength is the length GenerateStrong callers typically
// request.
const DefaultGeneratedLength = 12

// ContainsLower reports whether s contains an ASCII lowercase letter.
func ContainsLower(s string) bool { return strings.ContainsAny(s, lowerChars) }

// ContainsUpper reports whether s contains an ASCII uppercase letter.
func ContainsUpper(s string) bool { return strings.ContainsAny(s, upperChars) }

// ContainsDigit reports whether s contains an ASCII digit.
func ContainsDigit(s string) bool { return strings.ContainsAny(s, digitChars) }

// ContainsSymbol reports whether s contains a symbol from SymbolSet.
func ContainsSymbol(s string) bool { return strings.ContainsAny(s, SymbolSet) }

// Policy checks candidate passwords against the strength rules enforced
// at registration time. The answer is boolean only; callers that need to
// explain which rule failed use the validation package, which is built on
// the same class checks.
type Policy struct {
	minLength int
}

// PolicyOption configures a Policy.
type PolicyOption func(*Policy)

// WithMinLength sets the minimum accepted length (default: 8).
func WithMinLength(n int) PolicyOption {
	return func(p *Policy) {
		if n > 0 {
			p.minLength = n
		}
	}
}

// NewPolicy creates a password strength policy.
func NewPolicy(opts ...PolicyOption) *Policy {
	p := &Policy{minLength: DefaultMinLength}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// MinLength returns the minimum length the policy accepts.
func (p *Policy) MinLength() int { return p.minLength }

// IsValid reports whether password meets every rule: minimum length plus
// at least one lowercase letter, one uppercase letter, one digit, and one
// symbol from SymbolSet.
func (p *Policy) IsValid(password string) bool {
	if len(password) < p.minLength {
		return false
	}
	return ContainsLower(password) &&
		ContainsUpper(password) &&
		ContainsDigit(password) &&
		ContainsSymbol(password)
}

// GenerateStrong returns a random password of the requested length that
// contains at least one character from each class. One character is
// seeded per class, the remainder is drawn uniformly from the union, and
// the result is shuffled so class positions are unpredictable. Lengths
// below 4 cannot cover all classes and are rejected.
func GenerateStrong(length int) (string, error) {
	if length < 4 {
		return "", errors.InvalidParameter("length", "must be at least 4 to cover all character classes")
	}

	classes := [4]string{lowerChars, upperChars, digitChars, SymbolSet}
	all := lowerChars + upperChars + digitChars + SymbolSet

	chars := make([]byte, 0, length)
	for _, class := range classes {
		c, err := pickFrom(class)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}
	for len(chars) < length {
		c, err := pickFrom(all)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}

	if err := random.Shuffle(chars); err != nil {
		return "", err
	}
	return string(chars), nil
}

func pickFrom(set string) (byte, error) {
	i, err := random.Intn(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}
