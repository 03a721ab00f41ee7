// Package slug derives URL-safe identifiers and display names from
// user-supplied titles and tag strings.
package slug

import (
	"strings"
	"unicode"
)

// Make lowercases the input, collapses every run of non-alphanumeric
// characters to a single hyphen and strips leading/trailing hyphens.
// An input with no usable characters yields the empty string; callers
// decide whether that means "drop" or "substitute".
func Make(input string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(strings.TrimSpace(input)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// FormatTagName turns a raw tag string into its display form: hyphens and
// underscores become spaces and each word is title-cased.
func FormatTagName(input string) string {
	cleaned := strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(input))
	words := strings.Fields(cleaned)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		for j := 1; j < len(runes); j++ {
			runes[j] = unicode.ToLower(runes[j])
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
