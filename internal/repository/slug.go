package repository

import "strings"

// NormalizeLookupKey derives the host-side identifier for a character name:
// lowercase, every character outside [a-z0-9] replaced with '-'. Applying it
// to an already-normalized key yields the same key.
func NormalizeLookupKey(name string) string {
	lower := strings.ToLower(name)
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

// TitleCaseLookupKey reconstructs a display name from a lookup key when the
// host holds no stored name: each '-'-separated word gets its first letter
// upper-cased and words are joined with spaces.
func TitleCaseLookupKey(key string) string {
	words := strings.Split(key, "-")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
