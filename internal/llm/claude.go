package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"roleplay-chat/backend/internal/models"
)

type claudeResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// ClaudeProvider dispatches to the Anthropic messages API. The key travels
// in the x-api-key header rather than an Authorization bearer token, and
// every request carries the provider version header.
type ClaudeProvider struct {
	URL       string
	Version   string
	MaxTokens int
}

func (p *ClaudeProvider) Kind() models.ProviderKind {
	return models.ProviderClaude
}

func (p *ClaudeProvider) BuildRequest(settings models.ProviderSettings, messages []Message) (*Request, error) {
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
	headers.Set("x-api-key", settings.APIKey)
	headers.Set("anthropic-version", p.Version)

	return &Request{
		URL:     p.URL,
		Headers: headers,
		Body:    body,
	}, nil
}

// ExtractReply unwraps the first element of the response's content list
func (p *ClaudeProvider) ExtractReply(body []byte) (string, error) {
	var resp claudeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("error unmarshaling response: %w", err)
	}

	if resp.Error != nil {
		return "", fmt.Errorf("API error: %s", resp.Error.Message)
	}

	if len(resp.Content) == 0 {
		return "", errors.New("no response generated")
	}

	return resp.Content[0].Text, nil
}
