package errors

import (
	"net/http"
)

// ErrorResponse is the envelope written to clients. The body sits under a
// single "error" key so the envelope can grow additional top-level fields
// without breaking existing consumers.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody is the client-visible portion of an AppError. Cause and
// HTTPStatus stay server-side.
type ErrorBody struct {
	Code      ErrorCode      `json:"code"`
	Message   string         `json:"message"`
	Retryable bool           `json:"retryable"`
	Details   map[string]any `json:"details,omitempty"`
}

// ToResponse converts the error to its client-visible envelope.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Error: ErrorBody{
		Code:      e.Code,
		Message:   e.Message,
		Retryable: e.Retryable,
		Details:   e.Details,
	}}
}

// ResponseFor builds the client-visible envelope for any error. Errors that
// are not AppErrors are reported as generic internal errors, so their text
// never reaches the client. A nil error yields a zero envelope.
func ResponseFor(err error) ErrorResponse {
	appErr := Wrap(err)
	if appErr == nil {
		return ErrorResponse{}
	}
	return appErr.ToResponse()
}

// Status returns the HTTP status a handler should write for err.
// Errors without a recognized status map to 500.
func Status(err error) int {
	appErr, ok := AsAppError(err)
	if !ok || appErr.HTTPStatus == 0 {
		return http.StatusInternalServerError
	}
	return appErr.HTTPStatus
}
