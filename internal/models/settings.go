package models

// ProviderKind selects which LLM API shape a dispatch uses
type ProviderKind string

// Recognized provider kinds
const (
	ProviderClaude ProviderKind = "claude"
	ProviderOpenAI ProviderKind = "openai"
	ProviderCustom ProviderKind = "custom"
)

// ProviderSettings holds one provider's connection settings
type ProviderSettings struct {
	Model  string `json:"model"`
	APIKey string `json:"apiKey"`
	// APIURL is only meaningful for the custom provider
	APIURL string `json:"apiUrl,omitempty"`
	// CustomPrompt is appended to every conversation's system prompt
	CustomPrompt string `json:"customPrompt"`
}

// SettingsRecord is the persisted per-user credential record: one settings
// entry per provider kind plus the active selector. Saving one provider
// never discards another's entry.
type SettingsRecord struct {
	Active    ProviderKind                      `json:"active"`
	Providers map[ProviderKind]ProviderSettings `json:"providers"`
}
