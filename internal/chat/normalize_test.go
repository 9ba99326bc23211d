package chat

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases and trims", "  Hello World  ", "hello world"},
		{"corrects garman", "I like Garman watches", "i like garmin watches"},
		{"corrects garminn", "garminn stock", "garmin stock"},
		{"corrects fitbitt", "any Fitbitt deals", "any fitbit deals"},
		{"corrects tonie", "tonie boxes", "tonies boxes"},
		{"leaves unknown tokens", "echelon bikes", "echelon bikes"},
		{"empty string", "", ""},
		{"whitespace only", "   ", ""},
		{"no alphabetic characters", "12345 !!!", "12345 !!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"I like Garman watches",
		"  URGENT garminn ORDER  ",
		"plain text with no typos",
		"",
		strings.Repeat("garman ", 500),
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestNormalize_TypoCorrection(t *testing.T) {
	got := Normalize("I like Garman watches")
	if !strings.Contains(got, "garmin") {
		t.Errorf("expected corrected output to contain %q, got %q", "garmin", got)
	}
	if strings.Contains(got, "garman") {
		t.Errorf("expected misspelling to be corrected, got %q", got)
	}
}
