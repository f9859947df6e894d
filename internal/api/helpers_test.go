package api

import (
	"context"
	"io"
	"testing"
	"time"

	"roleplay-chat/backend/internal/llm"
	"roleplay-chat/backend/internal/models"
	"roleplay-chat/backend/internal/service"
	apperrors "roleplay-chat/backend/pkg/errors"
	"roleplay-chat/backend/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", JSON: true, Output: io.Discard})
}

// fakeStore serves fixed character records in place of the media host
type fakeStore struct {
	characters map[string]*models.Character
	created    []models.CharacterFields
}

func (f *fakeStore) List(ctx context.Context) ([]models.CharacterSummary, error) {
	summaries := make([]models.CharacterSummary, 0, len(f.characters))
	for _, c := range f.characters {
		summaries = append(summaries, models.CharacterSummary{
			Name:     c.Name,
			ImageURL: c.ImageURL,
			Bio:      c.Bio,
			Tags:     c.Tags,
		})
	}
	return summaries, nil
}

func (f *fakeStore) Get(ctx context.Context, lookupKey string) (*models.Character, error) {
	if c, ok := f.characters[lookupKey]; ok {
		return c, nil
	}
	return nil, apperrors.NewNotFoundError("character not found")
}

func (f *fakeStore) Create(ctx context.Context, image models.ImageUpload, fields models.CharacterFields) (*models.Character, error) {
	f.created = append(f.created, fields)
	return &models.Character{
		Name:     fields.Name,
		URLName:  "created",
		ImageURL: "https://img.example/created.png",
		Tags:     fields.Tags,
	}, nil
}

// fakeDispatcher answers every turn with a fixed reply
type fakeDispatcher struct {
	reply string
	err   error
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, kind models.ProviderKind, settings models.ProviderSettings, messages []llm.Message) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

// asUser injects an authenticated user ID the way the auth middleware does
func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userId", userID)
		c.Next()
	}
}

type testApp struct {
	engine   *gin.Engine
	store    *fakeStore
	settings *service.SettingsService
	chat     *service.ChatService
}

func newTestApp(t *testing.T, dispatcher service.ReplyDispatcher) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := &fakeStore{characters: map[string]*models.Character{
		"aria": {
			Name:         "Aria",
			URLName:      "aria",
			ImageURL:     "https://img.example/aria.png",
			Personality:  "warm",
			Scenario:     "a rainy cafe",
			FirstMessage: "Hello *there*!",
			Tags:         []string{"fantasy"},
		},
	}}

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	log := testLogger()

	settings := service.NewSettingsService(client, log)
	characters := service.NewCharacterService(store, log)
	sessions := service.NewSessionStore(time.Hour, time.Minute, 100)
	chat := service.NewChatService(characters, settings, dispatcher, sessions, log)

	engine := gin.New()
	engine.Use(apperrors.ErrorHandler())
	engine.Use(asUser("user-1"))

	characterHandler := NewCharacterHandler(characters)
	settingsHandler := NewSettingsHandler(settings)
	chatHandler := NewChatHandler(chat)

	engine.GET("/api/v1/characters", characterHandler.List)
	engine.GET("/api/v1/characters/:name", characterHandler.Get)
	engine.POST("/api/v1/characters", characterHandler.Create)
	engine.PUT("/api/v1/settings/:provider", settingsHandler.Save)
	engine.GET("/api/v1/settings", settingsHandler.LoadActive)
	engine.POST("/api/v1/chat/:name/sessions", chatHandler.StartSession)
	engine.GET("/api/v1/chat/sessions/:id", chatHandler.GetTranscript)
	engine.POST("/api/v1/chat/sessions/:id/messages", chatHandler.SendMessage)

	return &testApp{engine: engine, store: store, settings: settings, chat: chat}
}

func (a *testApp) saveSettings(t *testing.T, ownerID string) {
	t.Helper()
	require.NoError(t, a.settings.Save(context.Background(), ownerID, models.ProviderClaude, models.ProviderSettings{
		Model:        "claude-3-5-sonnet",
		APIKey:       "sk-ant-test",
		CustomPrompt: "Reply briefly.",
	}))
}
