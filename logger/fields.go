package logger

import (
	"time"
)

// Correlation keys, propagated from context by WithContext.
const (
	FieldTraceID       = "trace_id"
	FieldSpanID        = "span_id"
	FieldRequestID     = "request_id"
	FieldCorrelationID = "correlation_id"
)

// Identity keys. Log identifiers, never credentials: user IDs and emails
// are fine, raw passwords and signed tokens never are.
const (
	FieldUserID    = "user_id"
	FieldSessionID = "session_id"
	FieldEmail     = "email"
)

// Operation keys.
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldStatus    = "status"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
)

// Token-domain keys.
const (
	FieldTokenType = "token_type"
	FieldTokenID   = "token_id"
	FieldAlgorithm = "algorithm"
)

// Fields builds a map[string]interface{} from alternating key-value pairs.
//
//	logger.Info("done", logger.Fields("op", "issue", "type", "access"))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// OpFields builds a field map seeded with the operation name, extended with
// any alternating key-value pairs.
func OpFields(op string, kvs ...interface{}) map[string]interface{} {
	m := Fields(kvs...)
	m[FieldOperation] = op
	return m
}

// ErrorFields creates fields for an operation that failed.
func ErrorFields(op string, err error) map[string]interface{} {
	return OpFields(op, FieldError, err.Error())
}

// DurationFields creates fields for a timed operation.
func DurationFields(op string, d time.Duration) map[string]interface{} {
	return OpFields(op, FieldDuration, d.Milliseconds())
}
