// Package tokens splits free-text token lists into clean slices.
package tokens

import "strings"

// Fields splits s on any rune contained in delimiters, trims surrounding
// whitespace from every token and drops tokens that end up empty.
// Relative order is preserved and duplicates are kept.
func Fields(s, delimiters string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(delimiters, r)
	})
	tokens := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// Kinds splits a generation-kind list. Kinds may be separated by commas,
// newlines or both.
func Kinds(s string) []string {
	return Fields(s, ",\n")
}

// Attrs splits a code block attribute line the way rustdoc does, on
// commas, spaces and tabs.
func Attrs(s string) []string {
	return Fields(s, ", \t")
}
