package service

import (
	"testing"
	"time"

	"roleplay-chat/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStoreCreateAndGet(t *testing.T) {
	store := NewSessionStore(time.Hour, time.Minute, 10)

	session := store.Create("user-1", &models.Character{Name: "Aria", FirstMessage: "Hello there!"})
	assert.NotEmpty(t, session.ID)

	got, found := store.Get(session.ID)
	require.True(t, found)
	assert.Equal(t, session, got)
	assert.Equal(t, 1, store.Count())
}

func TestSessionStoreMiss(t *testing.T) {
	store := NewSessionStore(time.Hour, time.Minute, 10)

	_, found := store.Get("no-such-id")
	assert.False(t, found)
}

func TestSessionStoreDelete(t *testing.T) {
	store := NewSessionStore(time.Hour, time.Minute, 10)
	session := store.Create("user-1", &models.Character{Name: "Aria"})

	store.Delete(session.ID)
	_, found := store.Get(session.ID)
	assert.False(t, found)
}

func TestSessionStoreExpiry(t *testing.T) {
	store := NewSessionStore(20*time.Millisecond, time.Minute, 10)
	session := store.Create("user-1", &models.Character{Name: "Aria"})

	time.Sleep(40 * time.Millisecond)

	_, found := store.Get(session.ID)
	assert.False(t, found)
}

func TestTranscriptReturnsCopy(t *testing.T) {
	store := NewSessionStore(time.Hour, time.Minute, 10)
	session := store.Create("user-1", &models.Character{Name: "Aria", FirstMessage: "Hello there!"})

	transcript := session.Transcript()
	transcript[0].Content = "mutated"

	assert.Equal(t, "Hello there!", session.Transcript()[0].Content)
}
