package schema

import (
	"fmt"
	"strings"
)

// Error codes for validation failures.
const (
	ErrCodeRequired    = "required"
	ErrCodeMin         = "min"
	ErrCodeMax         = "max"
	ErrCodeOneOf       = "oneof"
	ErrCodeInvalidType = "invalid_type"
	ErrCodeDecode      = "decode"
	ErrCodeUnknownKey  = "unknown_key"
)

// ValidationError aggregates field-level validation failures.
type ValidationError struct {
	FieldErrors []FieldError
}

// Error formats validation errors as a multi-line message.
func (e *ValidationError) Error() string {
	if len(e.FieldErrors) == 0 {
		return "form validation failed: no errors"
	}

	var b strings.Builder
	if len(e.FieldErrors) == 1 {
		b.WriteString("form validation failed: 1 error\n")
	} else {
		fmt.Fprintf(&b, "form validation failed: %d errors\n", len(e.FieldErrors))
	}

	for _, fe := range e.FieldErrors {
		if fe.FieldPath == "" {
			fmt.Fprintf(&b, "  - %s (%s)\n", fe.Code, fe.Message)
			continue
		}
		fmt.Fprintf(&b, "  - %s: %s (%s)\n", fe.FieldPath, fe.Code, fe.Message)
	}

	return strings.TrimRight(b.String(), "\n")
}

// Has reports whether a failure with code exists for path.
func (e *ValidationError) Has(path, code string) bool {
	for _, fe := range e.FieldErrors {
		if fe.FieldPath == path && fe.Code == code {
			return true
		}
	}
	return false
}

// FieldError represents a single field validation failure.
type FieldError struct {
	FieldPath string // Form key, dot notation for nested values (e.g., "author.name")
	Code      string // Error code (e.g., "required", "min")
	Message   string // Human-readable description
}
