package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"roleplay-chat/backend/internal/models"
)

// chatCompletionRequest is the OpenAI-style payload; the Claude endpoint
// accepts the same field set.
type chatCompletionRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// OpenAIProvider dispatches to the OpenAI chat completions API with the
// key as an Authorization bearer token.
type OpenAIProvider struct {
	URL       string
	MaxTokens int
}

func (p *OpenAIProvider) Kind() models.ProviderKind {
	return models.ProviderOpenAI
}

func (p *OpenAIProvider) BuildRequest(settings models.ProviderSettings, messages []Message) (*Request, error) {
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
	headers.Set("Authorization", "Bearer "+settings.APIKey)

	return &Request{
		URL:     p.URL,
		Headers: headers,
		Body:    body,
	}, nil
}

func (p *OpenAIProvider) ExtractReply(body []byte) (string, error) {
	return extractChatCompletionReply(body)
}

// extractChatCompletionReply unwraps choices[0].message.content; the custom
// provider shares the same response contract.
func extractChatCompletionReply(body []byte) (string, error) {
	var resp chatCompletionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("error unmarshaling response: %w", err)
	}

	if resp.Error != nil {
		return "", fmt.Errorf("API error: %s", resp.Error.Message)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no response generated")
	}

	return resp.Choices[0].Message.Content, nil
}
