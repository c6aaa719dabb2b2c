// Package validation provides input validation for credential flows.
//
// It supports struct tag validation (using the validator library),
// programmatic validation with error collection, and credential-specific
// rules: email format and per-rule password strength breakdowns that agree
// with the password package's policy.
//
// # Struct Tag Validation
//
//	type RegisterCmd struct {
//	    Email    string `json:"email" validate:"required,email"`
//	    Password string `json:"password" validate:"required,strong_password"`
//	}
//	err := validation.Validate(cmd)
//
// # Programmatic Validation
//
//	v := validation.New().
//	    Required("email", email).
//	    Email("email", email).
//	    Password("password", password)
//	if appErr := v.Validate(); appErr != nil {
//	    // appErr.Details["fields"] lists each failed rule
//	}
package validation
