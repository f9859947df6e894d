package llm

import (
	"encoding/json"
	"fmt"
	"net/http"

	"roleplay-chat/backend/internal/models"
)

// CustomProvider dispatches to a user-configured OpenAI-compatible
// endpoint. The endpoint may be unauthenticated, so the Authorization
// header is only set when a key was configured.
type CustomProvider struct {
	MaxTokens int
}

func (p *CustomProvider) Kind() models.ProviderKind {
	return models.ProviderCustom
}

func (p *CustomProvider) BuildRequest(settings models.ProviderSettings, messages []Message) (*Request, error) {
	body, err := json.Marshal(chatCompletionRequest{
		Model:     settings.Model,
		Messages:  messages,
		MaxTokens: p.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %w", err)
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	if settings.APIKey != "" {
		headers.Set("Authorization", "Bearer "+settings.APIKey)
	}

	return &Request{
		URL:     settings.APIURL,
		Headers: headers,
		Body:    body,
	}, nil
}

func (p *CustomProvider) ExtractReply(body []byte) (string, error) {
	return extractChatCompletionReply(body)
}
