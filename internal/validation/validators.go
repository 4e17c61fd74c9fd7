package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	apperrors "github.com/favoriteblog/blog-ui/internal/errors"
)

// Validator is a function that validates a string value and returns an error message if invalid.
type Validator func(v string) string

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Required validates that a field is not blank.
func Required(message string) Validator {
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return message
		}
		return ""
	}
}

// MinLength validates that a field has at least n runes.
// Uses rune count for proper Unicode support.
func MinLength(n int, message string) Validator {
	return func(v string) string {
		if utf8.RuneCountInString(v) < n {
			return message
		}
		return ""
	}
}

// MaxLength validates that a field does not exceed maxLen runes.
func MaxLength(fieldName string, maxLen int) Validator {
	return func(v string) string {
		if utf8.RuneCountInString(v) > maxLen {
			return fmt.Sprintf("%s cannot exceed %d characters.", fieldName, maxLen)
		}
		return ""
	}
}

// Email validates the loose user@host.tld shape the API accepts.
func Email(message string) Validator {
	return func(v string) string {
		if !emailRe.MatchString(strings.TrimSpace(v)) {
			return message
		}
		return ""
	}
}

// Equals validates that a field matches another value (e.g., password confirmation).
func Equals(other, message string) Validator {
	return func(v string) string {
		if v != other {
			return message
		}
		return ""
	}
}

// OneOf validates that a field matches one of the provided options (case-insensitive).
func OneOf(fieldName string, options []string) Validator {
	return func(v string) string {
		v = strings.ToUpper(strings.TrimSpace(v))
		for _, opt := range options {
			if v == strings.ToUpper(opt) {
				return ""
			}
		}
		return fmt.Sprintf("%s must be one of: %s", fieldName, strings.Join(options, ", "))
	}
}

// FieldValidator provides a fluent API for validating multiple fields.
type FieldValidator struct {
	errors map[string]string
	order  []string
}

// New creates a new FieldValidator instance.
func New() *FieldValidator {
	return &FieldValidator{errors: make(map[string]string)}
}

// Validate validates a field with one or more validators.
// It stops at the first error for each field.
func (fv *FieldValidator) Validate(field, value string, validators ...Validator) *FieldValidator {
	for _, v := range validators {
		if msg := v(value); msg != "" {
			fv.Add(field, msg)
			break // Stop at first error per field
		}
	}
	return fv
}

// Add records a message for field unless one is already present.
func (fv *FieldValidator) Add(field, message string) *FieldValidator {
	if _, exists := fv.errors[field]; exists {
		return fv
	}
	fv.errors[field] = message
	fv.order = append(fv.order, field)
	return fv
}

// Valid reports whether no field failed.
func (fv *FieldValidator) Valid() bool { return len(fv.errors) == 0 }

// Errors returns the accumulated validation errors.
func (fv *FieldValidator) Errors() map[string]string {
	return fv.errors
}

// Err returns nil when valid, otherwise a validation AppError whose Field and
// Message describe the first failing field and whose Fields holds all of them.
func (fv *FieldValidator) Err() error {
	if fv.Valid() {
		return nil
	}
	first := fv.order[0]
	fields := make(map[string]string, len(fv.errors))
	for k, v := range fv.errors {
		fields[k] = v
	}
	return &apperrors.AppError{
		Code:    apperrors.ErrCodeValidation,
		Message: fv.errors[first],
		Field:   first,
		Fields:  fields,
	}
}
