package errors

// ErrorCode identifies an error class across process boundaries. Codes are
// stable strings that clients switch on, so renaming one is a breaking
// change.
type ErrorCode string

// Credential and token codes.
const (
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS" // identifier/password pair rejected
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"       // expiry in the past, signature fine
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"       // signature, structure, or type check failed
	ErrCodeSigningError       ErrorCode = "SIGNING_ERROR"       // token could not be signed
)

// Input codes.
const (
	ErrCodeInvalidParameter ErrorCode = "INVALID_PARAMETER" // bad argument to a library operation
	ErrCodeInvalidInput     ErrorCode = "INVALID_INPUT"     // user-supplied data failed validation
	ErrCodeMissingField     ErrorCode = "MISSING_FIELD"
	ErrCodeInvalidFormat    ErrorCode = "INVALID_FORMAT"
)

// Access and internal codes.
const (
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED" // no valid authentication on the request
	ErrCodeRateLimited  ErrorCode = "RATE_LIMITED" // too many attempts in a short window
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
)

// IsRetryableCode reports whether clients may safely retry after seeing
// code. Only rate limiting qualifies: credential and token failures stay
// failed no matter how often they are replayed.
func IsRetryableCode(code ErrorCode) bool {
	return code == ErrCodeRateLimited
}
