package repository

import (
	"regexp"
	"strings"

	"roleplay-chat/backend/internal/models"
)

// Context metadata keys recognized by the character record encoding
const (
	keyName           = "name"
	keyBio            = "bio"
	keyScenario       = "scenario"
	keyPersonality    = "personality"
	keyFirstMessage   = "first_message"
	keyExampleDialogs = "example_dialogs"
)

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]*>`)
	charTagPattern    = regexp.MustCompile(`{{char}}`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	// strips HTML the way the detail view does, including a trailing
	// unterminated tag
	bioTagPattern = regexp.MustCompile(`</?[^>]+(>|$)`)
)

// CleanContextValue prepares a free-text field for the delimited encoding:
// HTML tags and {{char}} template tags removed, whitespace collapsed, the
// delimiter replaced with '_' (lossy), and the result truncated to maxLen.
func CleanContextValue(text string, maxLen int) string {
	if text == "" {
		return ""
	}

	cleaned := htmlTagPattern.ReplaceAllString(text, "")
	cleaned = charTagPattern.ReplaceAllString(cleaned, "")
	cleaned = whitespacePattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	// Only the pipe is encoded since it is the pair delimiter
	cleaned = strings.ReplaceAll(cleaned, "|", "_")

	if len(cleaned) > maxLen {
		cleaned = cleaned[:maxLen]
	}
	return cleaned
}

// EncodeContext serializes character fields as '|'-joined key=value pairs.
// The name travels raw; every narrative field goes through CleanContextValue.
func EncodeContext(fields models.CharacterFields, maxLen int) string {
	pairs := []string{
		keyName + "=" + fields.Name,
		keyBio + "=" + CleanContextValue(fields.Bio, maxLen),
		keyScenario + "=" + CleanContextValue(fields.Scenario, maxLen),
		keyPersonality + "=" + CleanContextValue(fields.Personality, maxLen),
		keyFirstMessage + "=" + CleanContextValue(fields.FirstMessage, maxLen),
		keyExampleDialogs + "=" + CleanContextValue(fields.ExampleDialogs, maxLen),
	}
	return strings.Join(pairs, "|")
}

// DecodeContext parses a '|'-joined key=value string back into a field map.
// Values that contained a literal '|' come back with '_' substituted; that
// loss is part of the encoding's documented behavior.
func DecodeContext(encoded string) map[string]string {
	fields := make(map[string]string)
	for _, pair := range strings.Split(encoded, "|") {
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}
		fields[parts[0]] = parts[1]
	}
	return fields
}

// StripBioHTML removes HTML markup from a stored biography
func StripBioHTML(bio string) string {
	return bioTagPattern.ReplaceAllString(bio, "")
}
