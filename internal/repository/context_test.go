package repository

import (
	"strings"
	"testing"

	"roleplay-chat/backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCleanContextValue(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"strips html tags", "a <b>bold</b> claim", "a bold claim"},
		{"strips char template tag", "{{char}} smiles at you", "smiles at you"},
		{"collapses whitespace", "too   many\n\tspaces", "too many spaces"},
		{"pipe becomes underscore", "a|b|c", "a_b_c"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanContextValue(tt.in, 950))
		})
	}
}

func TestCleanContextValueTruncates(t *testing.T) {
	long := strings.Repeat("x", 1200)
	got := CleanContextValue(long, 950)
	assert.Len(t, got, 950)
}

func TestEncodeContextKeyOrder(t *testing.T) {
	encoded := EncodeContext(models.CharacterFields{
		Name:           "Aria",
		Bio:            "a bio",
		Scenario:       "a scenario",
		Personality:    "warm",
		FirstMessage:   "Hello!",
		ExampleDialogs: "User: hi",
	}, 950)

	assert.Equal(t,
		"name=Aria|bio=a bio|scenario=a scenario|personality=warm|first_message=Hello!|example_dialogs=User: hi",
		encoded)
}

func TestEncodeContextNameTravelsRaw(t *testing.T) {
	// The name key is not cleaned; narrative fields are
	encoded := EncodeContext(models.CharacterFields{
		Name: "Aria <3",
		Bio:  "likes <em>art</em>",
	}, 950)

	assert.Contains(t, encoded, "name=Aria <3")
	assert.Contains(t, encoded, "bio=likes art")
}

func TestDecodeContextRoundTrip(t *testing.T) {
	encoded := EncodeContext(models.CharacterFields{
		Name:         "Aria",
		Scenario:     "a rainy cafe",
		FirstMessage: "Hi there!",
	}, 950)

	fields := DecodeContext(encoded)
	assert.Equal(t, "Aria", fields["name"])
	assert.Equal(t, "a rainy cafe", fields["scenario"])
	assert.Equal(t, "Hi there!", fields["first_message"])
	assert.Equal(t, "", fields["bio"])
}

func TestDecodeContextPipeLoss(t *testing.T) {
	// A literal pipe in a field cannot be recovered after encoding
	encoded := EncodeContext(models.CharacterFields{
		Name: "Aria",
		Bio:  "left|right",
	}, 950)

	fields := DecodeContext(encoded)
	assert.Equal(t, "left_right", fields["bio"])
}

func TestDecodeContextSkipsMalformedPairs(t *testing.T) {
	fields := DecodeContext("name=Aria||novalue|bio=ok")
	assert.Equal(t, "Aria", fields["name"])
	assert.Equal(t, "ok", fields["bio"])
	assert.NotContains(t, fields, "novalue")
}

func TestStripBioHTML(t *testing.T) {
	assert.Equal(t, "plain text", StripBioHTML("<p>plain text</p>"))
	// A trailing unterminated tag is removed too
	assert.Equal(t, "cut off ", StripBioHTML("cut off <a href"))
}
