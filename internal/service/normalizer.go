package service

import (
	"regexp"
	"strings"
)

// Keeps letters, digits, underscore and whitespace. Unicode classes matter
// here: the knowledge base holds Vietnamese text.
var nonWordChars = regexp.MustCompile(`[^\p{L}\p{N}_\s]+`)

// Normalize lower-cases the input, strips punctuation and returns the set of
// unique tokens. Empty or whitespace-only input yields an empty set.
func Normalize(text string) map[string]struct{} {
	cleaned := nonWordChars.ReplaceAllString(strings.ToLower(text), "")

	tokens := make(map[string]struct{})
	for _, tok := range strings.Fields(cleaned) {
		tokens[tok] = struct{}{}
	}
	return tokens
}
