package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the error type every authkit operation returns. It pairs a
// stable machine-readable Code with a message safe to show end users;
// wrapped causes stay server-side and never marshal.
type AppError struct {
	Code       ErrorCode      `json:"code"`
	Message    string         `json:"message"`
	Retryable  bool           `json:"retryable"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

// Error renders "CODE: message", appending the cause when one is set.
func (e *AppError) Error() string {
	s := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Cause != nil {
		s += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return s
}

// Unwrap returns the underlying cause so errors.Is and errors.As see it.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause attaches the underlying error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail adds one detail entry and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any, 1)
	}
	e.Details[key] = value
	return e
}

// WithDetails merges entries into the details map and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	for k, v := range details {
		e.WithDetail(k, v)
	}
	return e
}

// New builds an AppError, deriving Retryable from the code's class. The
// named constructors below all funnel through it.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Credential and token errors ---

// InvalidCredentials reports a failed identifier/password check. The
// message does not reveal which half of the pair was wrong.
func InvalidCredentials() *AppError {
	return New(ErrCodeInvalidCredentials, "Invalid email or password.", http.StatusUnauthorized)
}

// TokenExpired reports a token whose expiry is in the past.
func TokenExpired() *AppError {
	return New(ErrCodeTokenExpired, "Your session has expired. Please log in again.", http.StatusUnauthorized)
}

// InvalidToken reports a token that failed signature, structure, or type
// checks. An empty reason selects the generic message.
func InvalidToken(reason string) *AppError {
	if reason == "" {
		reason = "Invalid authentication token. Please log in again."
	}
	return New(ErrCodeInvalidToken, reason, http.StatusUnauthorized)
}

// SigningError reports a token that could not be signed.
func SigningError(cause error) *AppError {
	return New(ErrCodeSigningError, "The token could not be signed.", http.StatusInternalServerError).
		WithCause(cause)
}

// --- Input errors ---

// InvalidParameter reports a bad argument to a library operation.
func InvalidParameter(param, reason string) *AppError {
	e := New(ErrCodeInvalidParameter, fmt.Sprintf("Invalid parameter: %s", reason), http.StatusBadRequest)
	if param != "" {
		e.WithDetail("parameter", param)
	}
	return e
}

// InvalidInput reports user-supplied data that failed validation.
func InvalidInput(field, reason string) *AppError {
	e := New(ErrCodeInvalidInput, fmt.Sprintf("Invalid input: %s", reason), http.StatusBadRequest)
	if field != "" {
		e.WithDetail("field", field)
	}
	return e
}

// Validation reports a validation failure with a caller-composed message.
func Validation(message string) *AppError {
	return New(ErrCodeInvalidInput, message, http.StatusBadRequest)
}

// MissingField reports a required field that was absent.
func MissingField(field string) *AppError {
	return New(ErrCodeMissingField, fmt.Sprintf("Missing required field: %s", field), http.StatusBadRequest).
		WithDetail("field", field)
}

// InvalidFormat reports a field whose value has the wrong shape.
func InvalidFormat(field, expectedFormat string) *AppError {
	return New(ErrCodeInvalidFormat, fmt.Sprintf("Invalid format for %s. Expected: %s", field, expectedFormat), http.StatusBadRequest).
		WithDetail("field", field).
		WithDetail("expected_format", expectedFormat)
}

// --- Access errors ---

// Unauthorized reports a request without valid authentication. An empty
// reason selects the generic message.
func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "Authentication required."
	}
	return New(ErrCodeUnauthorized, reason, http.StatusUnauthorized)
}

// RateLimited reports too many attempts in a short window. It is the one
// retryable error authkit produces.
func RateLimited() *AppError {
	return New(ErrCodeRateLimited, "Too many attempts. Please wait a moment and try again.", http.StatusTooManyRequests)
}

// --- Internal errors ---

// Internal reports an unexpected failure, keeping cause out of the
// client-visible message.
func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "An unexpected error occurred. Please try again or contact support.", http.StatusInternalServerError).
		WithCause(cause)
}

// --- Error inspection ---

// IsAppError reports whether err is or wraps an *AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError unwraps err to the innermost *AppError when one is present.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is (or wraps) an AppError carrying the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// Wrap converts any error into an AppError. AppErrors, wrapped or not, pass
// through unchanged; anything else becomes an internal error with the
// original attached as cause. Wrap(nil) returns nil.
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	return Internal(err)
}
