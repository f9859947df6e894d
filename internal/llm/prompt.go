package llm

import (
	"fmt"
	"strings"

	"roleplay-chat/backend/internal/models"
)

// notSpecified is the placeholder for blank personality and scenario
// fields. Biography and example dialogues render as empty strings instead;
// the distinction is part of the prompt's observable contract.
const notSpecified = "Not specified"

const systemPromptTemplate = `
You are roleplaying as %s. Here are your characteristics and guidelines:

# Character Details
Name: %s
Personality: %s
Current Scenario: %s

# Background Information
%s

# Example Dialogues
%s

# Important Instructions
- Stay in character at all times
- Match the personality traits described above
- Keep responses consistent with the scenario
- Use the example dialogues as a reference for tone and style
- Never acknowledge being an AI or break character
- Maintain the character's unique speech patterns and mannerisms

# Custom Instructions
%s`

// ComposeSystemPrompt interpolates the character's persona and the user's
// custom instruction text into the fixed system prompt layout.
func ComposeSystemPrompt(character *models.Character, customPrompt string) string {
	return strings.TrimSpace(fmt.Sprintf(systemPromptTemplate,
		character.Name,
		character.Name,
		orPlaceholder(character.Personality),
		orPlaceholder(character.Scenario),
		character.Bio,
		character.ExampleDialogs,
		customPrompt,
	))
}

// AssembleConversation builds the outbound message sequence: the system
// prompt first, then the prior transcript in order, then the new user
// utterance last.
func AssembleConversation(systemPrompt string, history []models.Message, userText string) []Message {
	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: models.RoleSystem, Content: systemPrompt})
	for _, msg := range history {
		messages = append(messages, Message{Role: msg.Role, Content: msg.Content})
	}
	messages = append(messages, Message{Role: models.RoleUser, Content: userText})
	return messages
}

func orPlaceholder(value string) string {
	if value == "" {
		return notSpecified
	}
	return value
}
