package models

// Message roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one transcript entry. Transcripts are held in memory for the
// lifetime of a chat session and never persisted.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	// IsInitial marks the character's opening line; it only affects
	// presentation, never dispatch.
	IsInitial bool `json:"isInitial,omitempty"`
}
