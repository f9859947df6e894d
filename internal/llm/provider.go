// Package llm turns a composed conversation into exactly one assistant
// reply. Each provider kind is a strategy that knows how to shape the
// outbound request and unwrap the reply; adding a provider means adding a
// strategy, not editing a branch.
package llm

import (
	"net/http"

	"roleplay-chat/backend/internal/models"
	"roleplay-chat/backend/pkg/config"
	apperrors "roleplay-chat/backend/pkg/errors"
)

// Message is the wire shape shared by all provider payloads. Roles and
// content pass through from the transcript unchanged.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a fully prepared outbound provider call
type Request struct {
	URL     string
	Headers http.Header
	Body    []byte
}

// Provider shapes requests for, and unwraps replies from, one LLM API
type Provider interface {
	Kind() models.ProviderKind
	BuildRequest(settings models.ProviderSettings, messages []Message) (*Request, error)
	ExtractReply(body []byte) (string, error)
}

// Registry resolves a provider kind to its strategy
type Registry struct {
	providers map[models.ProviderKind]Provider
}

// NewRegistry builds the registry with the three recognized providers
func NewRegistry(cfg *config.Config) *Registry {
	r := &Registry{providers: make(map[models.ProviderKind]Provider)}
	r.Register(&ClaudeProvider{
		URL:       cfg.Providers.AnthropicURL,
		Version:   cfg.Providers.AnthropicVersion,
		MaxTokens: cfg.Providers.MaxTokens,
	})
	r.Register(&OpenAIProvider{
		URL:       cfg.Providers.OpenAIURL,
		MaxTokens: cfg.Providers.MaxTokens,
	})
	r.Register(&CustomProvider{
		MaxTokens: cfg.Providers.MaxTokens,
	})
	return r
}

// Register adds a provider strategy
func (r *Registry) Register(p Provider) {
	r.providers[p.Kind()] = p
}

// Lookup returns the strategy for kind, or UnknownProviderError. The check
// runs before any network activity.
func (r *Registry) Lookup(kind models.ProviderKind) (Provider, error) {
	p, ok := r.providers[kind]
	if !ok {
		return nil, apperrors.NewUnknownProviderError(string(kind))
	}
	return p, nil
}
