package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLookupKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple name", "Aria", "aria"},
		{"spaces become dashes", "Aria Starlight", "aria-starlight"},
		{"punctuation becomes dashes", "Dr. Who?!", "dr--who--"},
		{"digits survive", "Agent 47", "agent-47"},
		{"non-ascii becomes dashes", "Zoë", "zo-"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeLookupKey(tt.in))
		})
	}
}

func TestNormalizeLookupKeyIdempotent(t *testing.T) {
	key := NormalizeLookupKey("Dr. Who?!")
	assert.Equal(t, key, NormalizeLookupKey(key))
}

func TestTitleCaseLookupKey(t *testing.T) {
	assert.Equal(t, "Aria Starlight", TitleCaseLookupKey("aria-starlight"))
	assert.Equal(t, "Agent 47", TitleCaseLookupKey("agent-47"))
}

func TestTitleCaseLookupKeyConsecutiveDashes(t *testing.T) {
	// Empty words from doubled dashes are preserved as extra spaces
	assert.Equal(t, "Dr  Who  ", TitleCaseLookupKey("dr--who--"))
}
