package service

import (
	"sync"
	"time"

	"roleplay-chat/backend/internal/models"
	"roleplay-chat/backend/pkg/cache"

	"github.com/google/uuid"
)

// Session is one chat conversation: a character plus its in-memory
// transcript. The mutex is the per-session in-flight guard; holding it
// across a full send serializes concurrent submissions into FIFO order.
type Session struct {
	ID        string
	OwnerID   string
	Character *models.Character

	mu       sync.Mutex
	messages []models.Message
}

// Transcript returns a copy of the session's messages
func (s *Session) Transcript() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Message(nil), s.messages...)
}

// SessionStore holds live sessions in an expiring in-memory cache.
// Nothing outlives the cache entry: an expired or evicted session takes
// its transcript with it.
type SessionStore struct {
	cache *cache.Cache
}

// NewSessionStore creates a session store with the given TTL and ceiling
func NewSessionStore(ttl, purgeWindow time.Duration, maxSessions int) *SessionStore {
	return &SessionStore{
		cache: cache.New(ttl, purgeWindow, maxSessions),
	}
}

// Create opens a session for a character, seeding the transcript with the
// character's opening line when one exists.
func (s *SessionStore) Create(ownerID string, character *models.Character) *Session {
	session := &Session{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Character: character,
	}

	if character.FirstMessage != "" {
		session.messages = []models.Message{{
			Role:      models.RoleAssistant,
			Content:   character.FirstMessage,
			IsInitial: true,
		}}
	}

	s.cache.Set(session.ID, session)
	return session
}

// Get returns a live session and refreshes its expiry
func (s *SessionStore) Get(id string) (*Session, bool) {
	value, found := s.cache.Get(id)
	if !found {
		return nil, false
	}
	session, ok := value.(*Session)
	if !ok {
		return nil, false
	}
	s.cache.Touch(id)
	return session, true
}

// Delete removes a session
func (s *SessionStore) Delete(id string) {
	s.cache.Delete(id)
}

// Count returns the number of live sessions
func (s *SessionStore) Count() int {
	return s.cache.Count()
}
