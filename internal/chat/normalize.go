// Package chat implements the dialogue engine behind the JDM support-chat
// widget: text normalization, intent routing, cross-turn context tracking,
// and the multi-turn lead-capture flow.
package chat

import "strings"

// typoMap corrects known misspellings of brand names, applied token by token.
var typoMap = map[string]string{
	"garman":  "garmin",
	"garminn": "garmin",
	"fitbitt": "fitbit",
	"tonie":   "tonies",
}

// Normalize lower-cases and trims the input, then replaces each
// space-separated token with its known correction if one exists.
// It is deterministic and idempotent.
func Normalize(raw string) string {
	cleaned := strings.TrimSpace(strings.ToLower(raw))
	if cleaned == "" {
		return ""
	}

	tokens := strings.Split(cleaned, " ")
	for i, token := range tokens {
		if fixed, ok := typoMap[token]; ok {
			tokens[i] = fixed
		}
	}
	return strings.Join(tokens, " ")
}
