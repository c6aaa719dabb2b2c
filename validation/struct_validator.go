package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/skillsenselab/authkit/errors"
	"github.com/skillsenselab/authkit/password"
)

var (
	structValidator *validator.Validate
	structOnce      sync.Once
)

// getValidator returns the lazily built singleton validator.
func getValidator() *validator.Validate {
	structOnce.Do(func() {
		structValidator = newStructValidator()
	})
	return structValidator
}

// newStructValidator builds the go-playground validator with json-tag field
// naming and the authkit-specific rules registered.
func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their json names so messages match the wire shape.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return toSnakeCase(fld.Name)
		}
		return name
	})

	// strong_password applies the registration strength policy to string
	// fields: `validate:"required,strong_password"`.
	policy := password.NewPolicy()
	_ = v.RegisterValidation("strong_password", func(fl validator.FieldLevel) bool {
		return policy.IsValid(fl.Field().String())
	})

	return v
}

// Validate validates a struct using its `validate` tags, for example
// `validate:"required,email,max=255"`. Failures fold into one AppError the
// same way chained Validator rules do.
func Validate(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Validation("validation failed")
	}

	v := New()
	for _, e := range fieldErrs {
		v.AddError(toSnakeCase(e.Field()), ruleMessage(e))
	}
	return v.Validate()
}

// tagMessages maps validator tags to message templates; %s receives the tag
// parameter when the template carries one.
var tagMessages = map[string]string{
	"required":        "is required",
	"email":           "must be a valid email address",
	"min":             "must be at least %s characters",
	"max":             "must be at most %s characters",
	"url":             "must be a valid URL",
	"uuid":            "must be a valid UUID",
	"oneof":           "must be one of: %s",
	"strong_password": "must be at least 8 characters with a lowercase letter, an uppercase letter, a digit, and a symbol",
}

func ruleMessage(e validator.FieldError) string {
	template, ok := tagMessages[e.Tag()]
	if !ok {
		return "is invalid"
	}
	if strings.Contains(template, "%s") {
		return fmt.Sprintf(template, e.Param())
	}
	return template
}

// toSnakeCase converts CamelCase field names to snake_case.
func toSnakeCase(s string) string {
	out := make([]rune, 0, len(s)+4)
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				out = append(out, '_')
			}
			r = unicode.ToLower(r)
		}
		out = append(out, r)
	}
	return string(out)
}
