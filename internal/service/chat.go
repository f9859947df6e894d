package service

import (
	"context"
	"strings"

	"roleplay-chat/backend/internal/llm"
	"roleplay-chat/backend/internal/models"
	apperrors "roleplay-chat/backend/pkg/errors"
	"roleplay-chat/backend/pkg/logger"
)

// FallbackReply is the fixed assistant utterance shown when a dispatch
// fails. The transcript never surfaces a raw error; the character simply
// apologizes.
const FallbackReply = "Sorry, I encountered an error. Please try again."

// ReplyDispatcher sends a composed conversation and returns the reply text
type ReplyDispatcher interface {
	Dispatch(ctx context.Context, kind models.ProviderKind, settings models.ProviderSettings, messages []llm.Message) (string, error)
}

// ChatService owns chat sessions and drives the prompt composer and
// dispatcher for every user turn.
type ChatService struct {
	characters *CharacterService
	settings   *SettingsService
	dispatcher ReplyDispatcher
	sessions   *SessionStore
	log        *logger.Logger
}

// NewChatService wires the chat service
func NewChatService(characters *CharacterService, settings *SettingsService, dispatcher ReplyDispatcher, sessions *SessionStore, log *logger.Logger) *ChatService {
	return &ChatService{
		characters: characters,
		settings:   settings,
		dispatcher: dispatcher,
		sessions:   sessions,
		log:        log,
	}
}

// StartSession fetches the character and opens a fresh session for it. The
// transcript starts with the character's opening line when one exists.
func (s *ChatService) StartSession(ctx context.Context, ownerID, lookupKey string) (*Session, error) {
	character, err := s.characters.Get(ctx, lookupKey)
	if err != nil {
		return nil, err
	}

	session := s.sessions.Create(ownerID, character)
	s.log.Info("chat session opened",
		"session_id", session.ID,
		"character", character.URLName,
	)
	return session, nil
}

// GetSession returns a live session owned by the caller
func (s *ChatService) GetSession(ownerID, sessionID string) (*Session, error) {
	session, found := s.sessions.Get(sessionID)
	if !found || session.OwnerID != ownerID {
		return nil, apperrors.NewNotFoundError("chat session not found")
	}
	return session, nil
}

// SendMessage runs one user turn: compose the system prompt, assemble the
// outbound conversation, dispatch, and append exactly one assistant
// message. A failed dispatch yields the fixed fallback reply instead of an
// error. The returned slice is the updated transcript.
func (s *ChatService) SendMessage(ctx context.Context, ownerID, sessionID, userText string) ([]models.Message, error) {
	session, err := s.GetSession(ownerID, sessionID)
	if err != nil {
		return nil, err
	}

	kind, settings, err := s.settings.LoadActive(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, apperrors.NewConfigurationError("Please configure API settings first")
	}

	// In-flight guard: one send at a time per session, FIFO
	session.mu.Lock()
	defer session.mu.Unlock()

	userText = strings.TrimSpace(userText)
	if userText == "" || session.Character == nil {
		// Deliberate no-op: no network call, no transcript mutation
		return append([]models.Message(nil), session.messages...), nil
	}

	history := session.messages
	session.messages = append(session.messages, models.Message{
		Role:    models.RoleUser,
		Content: userText,
	})

	systemPrompt := llm.ComposeSystemPrompt(session.Character, settings.CustomPrompt)
	outbound := llm.AssembleConversation(systemPrompt, history, userText)

	reply, err := s.dispatcher.Dispatch(ctx, kind, *settings, outbound)
	if err != nil {
		s.log.LogError(err, "chat dispatch failed",
			"session_id", session.ID,
			"provider", string(kind),
		)
		reply = FallbackReply
	}

	session.messages = append(session.messages, models.Message{
		Role:    models.RoleAssistant,
		Content: reply,
	})

	return append([]models.Message(nil), session.messages...), nil
}
