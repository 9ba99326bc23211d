// Package validation provides input validation for chat API requests.
package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Error codes for validation failures.
const (
	CodeRequired      = "required"
	CodeTooLong       = "too_long"
	CodeInvalidFormat = "invalid_format"
)

// ValidationError represents a validation failure with field context.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// MessageValidator validates inbound chat messages.
type MessageValidator struct {
	maxLength int
}

// NewMessageValidator creates a validator with the given byte limit.
func NewMessageValidator(maxLength int) *MessageValidator {
	return &MessageValidator{maxLength: maxLength}
}

// Validate checks one user submission. Whitespace-only text counts as
// empty: the input-source contract drops it before any routing happens.
func (v *MessageValidator) Validate(text string) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(text) == "" {
		errs = append(errs, ValidationError{
			Field:   "text",
			Message: "message text is required",
			Code:    CodeRequired,
		})
		return errs
	}

	if len(text) > v.maxLength {
		errs = append(errs, ValidationError{
			Field:   "text",
			Message: fmt.Sprintf("message exceeds %d bytes", v.maxLength),
			Code:    CodeTooLong,
		})
	}

	if !utf8.ValidString(text) {
		errs = append(errs, ValidationError{
			Field:   "text",
			Message: "message is not valid UTF-8",
			Code:    CodeInvalidFormat,
		})
	} else if containsControlChars(text) {
		errs = append(errs, ValidationError{
			Field:   "text",
			Message: "message contains control characters",
			Code:    CodeInvalidFormat,
		})
	}

	return errs
}

// containsControlChars reports control characters other than tab and
// newline, which paste buffers legitimately produce.
func containsControlChars(text string) bool {
	for _, r := range text {
		if unicode.IsControl(r) && r != '\t' && r != '\n' && r != '\r' {
			return true
		}
	}
	return false
}
