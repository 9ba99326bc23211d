// Package sanitize masks personal data in chat text before it reaches the
// logs. Visitors type emails and phone numbers into the lead-capture flow,
// and those must not land in log aggregation verbatim.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	phonePattern = regexp.MustCompile(`\+?[1-9][\d\- ]{5,14}\d`)
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
)

// Sanitizer masks personal data in free text.
type Sanitizer struct {
	maskPhones bool
	maskEmails bool
}

// Config controls which maskers are applied.
type Config struct {
	// MaskPhones masks phone numbers.
	MaskPhones bool
	// MaskEmails masks email addresses.
	MaskEmails bool
}

// DefaultConfig returns a configuration with all masking enabled.
func DefaultConfig() Config {
	return Config{
		MaskPhones: true,
		MaskEmails: true,
	}
}

// New creates a new Sanitizer with the given configuration.
func New(cfg Config) *Sanitizer {
	return &Sanitizer{
		maskPhones: cfg.MaskPhones,
		maskEmails: cfg.MaskEmails,
	}
}

// NewDefault creates a sanitizer with default configuration.
func NewDefault() *Sanitizer {
	return New(DefaultConfig())
}

// String masks all personal data in the input.
// Emails are masked before phones so the digits of a masked email's domain
// are not re-matched as a phone number.
func (s *Sanitizer) String(input string) string {
	result := input
	if s.maskEmails {
		result = emailPattern.ReplaceAllStringFunc(result, maskEmail)
	}
	if s.maskPhones {
		result = phonePattern.ReplaceAllStringFunc(result, maskPhone)
	}
	return result
}

// maskEmail keeps at most the first two characters of the local part and
// the full domain: jane@acme.com -> ja***@acme.com.
func maskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return "***"
	}
	local := email[:at]
	keep := 2
	if len(local) < keep {
		keep = 1
	}
	return local[:keep] + "***" + email[at:]
}

// maskPhone keeps the first three and last two characters: +353 1 2050500
// -> +35**********00.
func maskPhone(phone string) string {
	if len(phone) <= 5 {
		return phone
	}
	return phone[:3] + strings.Repeat("*", len(phone)-5) + phone[len(phone)-2:]
}
