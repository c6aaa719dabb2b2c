package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/skillsenselab/authkit/errors"
)

// FieldError is one failed rule, addressed by field name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator accumulates FieldErrors across chained rule checks. Rule methods
// return the receiver so checks read as one fluent statement; Validate folds
// whatever accumulated into a single AppError.
type Validator struct {
	errors []FieldError
}

// New creates an empty Validator.
func New() *Validator {
	return &Validator{errors: make([]FieldError, 0)}
}

// fail records a failed rule for field. All rule methods funnel through it.
func (v *Validator) fail(field, format string, args ...any) *Validator {
	v.errors = append(v.errors, FieldError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
	return v
}

// AddError records an externally detected field error.
func (v *Validator) AddError(field, message string) {
	v.fail(field, "%s", message)
}

// HasErrors reports whether any rule failed.
func (v *Validator) HasErrors() bool { return len(v.errors) > 0 }

// Errors returns the collected field errors in check order.
func (v *Validator) Errors() []FieldError { return v.errors }

// Validate folds the collected errors into one AppError, or nil when every
// rule passed. The messages join into the error text and the structured list
// rides along under the "fields" detail.
func (v *Validator) Validate() *errors.AppError {
	if len(v.errors) == 0 {
		return nil
	}

	var b strings.Builder
	for i, e := range v.errors {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(e.Field)
		b.WriteString(": ")
		b.WriteString(e.Message)
	}

	return errors.Validation(b.String()).WithDetail("fields", v.errors)
}

// --- String rules ---

// Required fails when value is empty or only whitespace.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		return v.fail(field, "is required")
	}
	return v
}

// MinLength fails when value is shorter than minLen bytes.
func (v *Validator) MinLength(field, value string, minLen int) *Validator {
	if len(value) < minLen {
		return v.fail(field, "must be at least %d characters", minLen)
	}
	return v
}

// MaxLength fails when value is longer than maxLen bytes.
func (v *Validator) MaxLength(field, value string, maxLen int) *Validator {
	if len(value) > maxLen {
		return v.fail(field, "must be %d characters or less", maxLen)
	}
	return v
}

// Pattern fails when a non-empty value does not match the regex. Empty
// values pass; chain Required to reject them.
func (v *Validator) Pattern(field, value, pattern string) *Validator {
	if value == "" {
		return v
	}
	if matched, err := regexp.MatchString(pattern, value); err != nil || !matched {
		return v.fail(field, "does not match required format")
	}
	return v
}

// OneOf fails when a non-empty value is not in the allowed set.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	if value == "" {
		return v
	}
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	return v.fail(field, "must be one of: %s", strings.Join(allowed, ", "))
}

// --- Numeric rules ---

// Min fails when value is below minVal.
func (v *Validator) Min(field string, value, minVal int) *Validator {
	if value < minVal {
		return v.fail(field, "must be at least %d", minVal)
	}
	return v
}

// Max fails when value is above maxVal.
func (v *Validator) Max(field string, value, maxVal int) *Validator {
	if value > maxVal {
		return v.fail(field, "must be %d or less", maxVal)
	}
	return v
}

// Range fails when value lies outside [minVal, maxVal].
func (v *Validator) Range(field string, value, minVal, maxVal int) *Validator {
	if value < minVal || value > maxVal {
		return v.fail(field, "must be between %d and %d", minVal, maxVal)
	}
	return v
}

// --- Identifier rules ---

// RequiredUUID fails unless value parses as a non-nil UUID.
func (v *Validator) RequiredUUID(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		return v.fail(field, "is required")
	}
	parsed, err := uuid.Parse(value)
	if err != nil {
		return v.fail(field, "must be a valid UUID")
	}
	if parsed == uuid.Nil {
		return v.fail(field, "must not be empty")
	}
	return v
}

// OptionalUUID fails when a non-empty value does not parse as a UUID.
func (v *Validator) OptionalUUID(field, value string) *Validator {
	if value == "" {
		return v
	}
	if _, err := uuid.Parse(value); err != nil {
		return v.fail(field, "must be a valid UUID")
	}
	return v
}

// Custom fails with message when condition is false.
func (v *Validator) Custom(condition bool, field, message string) *Validator {
	if condition {
		return v
	}
	return v.fail(field, "%s", message)
}

// Required validates a single required field and returns the folded error.
func Required(field, value string) error {
	if appErr := New().Required(field, value).Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// ValidateUUID parses value, reporting absence and malformation as
// validation errors.
func ValidateUUID(field, value string) (uuid.UUID, error) {
	if strings.TrimSpace(value) == "" {
		return uuid.Nil, errors.Validation(field + " is required")
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, errors.Validation(field + " must be a valid UUID")
	}
	return id, nil
}
