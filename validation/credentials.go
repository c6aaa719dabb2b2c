package validation

import (
	"fmt"
	"regexp"

	"github.com/skillsenselab/authkit/password"
)

// emailPattern accepts the common mailbox@domain.tld shape. It is a format
// gate for registration input, not an RFC 5322 parser.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// IsEmail reports whether value looks like an email address.
func IsEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// Email checks if a string is a plausible email address. Empty values are
// skipped; chain Required to reject them.
func (v *Validator) Email(field, value string) *Validator {
	if value == "" {
		return v
	}
	if !IsEmail(value) {
		v.AddError(field, "must be a valid email address")
	}
	return v
}

// Password checks a string against the password strength rules, adding one
// field error per failed rule. Empty values are skipped; chain Required to
// reject them.
func (v *Validator) Password(field, value string) *Validator {
	if value == "" {
		return v
	}
	for _, fe := range PasswordRules(value) {
		v.AddError(field, fe.Message)
	}
	return v
}

// PasswordRules names every strength rule the candidate password fails. It
// is built on the same class checks password.Policy uses, so a password
// with no failed rules always satisfies Policy.IsValid. An empty slice
// means the password is acceptable.
func PasswordRules(candidate string) []FieldError {
	var failed []FieldError
	add := func(message string) {
		failed = append(failed, FieldError{Field: "password", Message: message})
	}

	if len(candidate) < password.DefaultMinLength {
		add(fmt.Sprintf("must be at least %d characters", password.DefaultMinLength))
	}
	if !password.ContainsLower(candidate) {
		add("must contain a lowercase letter")
	}
	if !password.ContainsUpper(candidate) {
		add("must contain an uppercase letter")
	}
	if !password.ContainsDigit(candidate) {
		add("must contain a digit")
	}
	if !password.ContainsSymbol(candidate) {
		add(`must contain a symbol (` + password.SymbolSet + `)`)
	}
	return failed
}

// ValidateCredentials checks an email/password pair as submitted at
// registration. It reports every problem at once so the caller can surface
// a complete form response.
func ValidateCredentials(email, candidate string) error {
	v := New().
		Required("email", email).
		Email("email", email).
		Required("password", candidate).
		Password("password", candidate)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
