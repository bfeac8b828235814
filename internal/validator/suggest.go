package validator

import (
	"fmt"
	"regexp"
	"strings"
)

// SuggestionType tags a Suggestion with the problem it addresses.
type SuggestionType string

const (
	SuggestTrailingComma SuggestionType = "trailing-comma"
	SuggestUnquotedKey   SuggestionType = "unquoted-key"
	SuggestSingleQuote   SuggestionType = "single-quote"
	SuggestIncomplete    SuggestionType = "incomplete"
	SuggestGeneric       SuggestionType = "generic"
)

// Suggestion is a human-readable repair hint.
type Suggestion struct {
	Type    SuggestionType `json:"type"`
	Message string         `json:"message"`
	Fix     string         `json:"fix"`
}

var (
	trailingCommaRE = regexp.MustCompile(`,\s*[}\]]`)
	unquotedKeyRE   = regexp.MustCompile(`[{,]\s*([A-Za-z_][A-Za-z0-9_]*)\s*:`)
)

// A hint inspects the source text and lowercased error message and
// reports the suggestion it produces, if any.
type hint func(source, lowerErr string) (Suggestion, bool)

// hints are evaluated top to bottom; each contributes at most one suggestion.
var hints = []hint{
	func(source, _ string) (Suggestion, bool) {
		return Suggestion{
			Type:    SuggestTrailingComma,
			Message: "Remove the trailing comma",
			Fix:     "Find `,}` or `,]` and delete the comma",
		}, trailingCommaRE.MatchString(source)
	},
	func(source, _ string) (Suggestion, bool) {
		m := unquotedKeyRE.FindStringSubmatch(source)
		if m == nil {
			return Suggestion{}, false
		}
		return Suggestion{
			Type:    SuggestUnquotedKey,
			Message: fmt.Sprintf("Wrap the key %q in double quotes", m[1]),
			Fix:     fmt.Sprintf("Change %s: to %q:", m[1], m[1]),
		}, true
	},
	func(source, _ string) (Suggestion, bool) {
		return Suggestion{
			Type:    SuggestSingleQuote,
			Message: "Use double quotes instead of single quotes",
			Fix:     `Replace every ' with "`,
		}, strings.Contains(source, "'")
	},
	func(_, lowerErr string) (Suggestion, bool) {
		return Suggestion{
			Type:    SuggestIncomplete,
			Message: "The JSON structure is incomplete",
			Fix:     "Check that every { } and [ ] pair is closed",
		}, strings.Contains(lowerErr, "unexpected end") || strings.Contains(lowerErr, "end of json")
	},
}

var genericSuggestion = Suggestion{
	Type:    SuggestGeneric,
	Message: "Check the JSON syntax",
	Fix:     "Make sure the format is correct, or try the repair command",
}

// Suggest produces repair hints for source given the parser's error
// message. It never fails and does not require source to be invalid; when
// no hint applies a single generic suggestion is returned.
func Suggest(source, errorMessage string, _ Position) []Suggestion {
	lowerErr := strings.ToLower(errorMessage)

	var out []Suggestion
	for _, h := range hints {
		if s, ok := h(source, lowerErr); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		out = append(out, genericSuggestion)
	}
	return out
}
