package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "roleplay-chat/backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionResponse struct {
	SessionID string `json:"sessionId"`
	Character struct {
		Name string `json:"name"`
	} `json:"character"`
	Messages []struct {
		Role       string `json:"role"`
		Content    string `json:"content"`
		IsInitial  bool   `json:"isInitial"`
		Paragraphs [][]struct {
			Kind string `json:"kind"`
			Text string `json:"text"`
		} `json:"paragraphs"`
	} `json:"messages"`
}

func startSession(t *testing.T, app *testApp) sessionResponse {
	t.Helper()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/chat/aria/sessions", nil)
	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp sessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestStartSession(t *testing.T) {
	app := newTestApp(t, &fakeDispatcher{})

	resp := startSession(t, app)

	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, "Aria", resp.Character.Name)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, "assistant", resp.Messages[0].Role)
	assert.True(t, resp.Messages[0].IsInitial)
}

func TestStartSessionUnknownCharacter(t *testing.T) {
	app := newTestApp(t, &fakeDispatcher{})

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/chat/nobody/sessions", nil)
	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSendMessage(t *testing.T) {
	app := newTestApp(t, &fakeDispatcher{reply: "Hi *back*!"})
	app.saveSettings(t, "user-1")
	session := startSession(t, app)

	req, _ := http.NewRequest(http.MethodPost,
		"/api/v1/chat/sessions/"+session.SessionID+"/messages",
		strings.NewReader(`{"content":"Hi"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp sessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Messages, 3)
	assert.Equal(t, "user", resp.Messages[1].Role)
	assert.Equal(t, "assistant", resp.Messages[2].Role)
	assert.Equal(t, "Hi *back*!", resp.Messages[2].Content)

	// The reply arrives with its markup already rendered
	require.Len(t, resp.Messages[2].Paragraphs, 1)
	spans := resp.Messages[2].Paragraphs[0]
	require.Len(t, spans, 3)
	assert.Equal(t, "italic", spans[1].Kind)
	assert.Equal(t, "back", spans[1].Text)
}

func TestSendMessageWithoutSettings(t *testing.T) {
	app := newTestApp(t, &fakeDispatcher{reply: "ok"})
	session := startSession(t, app)

	req, _ := http.NewRequest(http.MethodPost,
		"/api/v1/chat/sessions/"+session.SessionID+"/messages",
		strings.NewReader(`{"content":"Hi"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusPreconditionFailed, w.Code)
	assert.Contains(t, w.Body.String(), "CONFIGURATION_ERROR")
	assert.Contains(t, w.Body.String(), "Please configure API settings first")
}

func TestSendMessageDispatchFailureYieldsFallback(t *testing.T) {
	app := newTestApp(t, &fakeDispatcher{err: apperrors.NewUpstreamError(500, "provider request failed")})
	app.saveSettings(t, "user-1")
	session := startSession(t, app)

	req, _ := http.NewRequest(http.MethodPost,
		"/api/v1/chat/sessions/"+session.SessionID+"/messages",
		strings.NewReader(`{"content":"Hi"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)

	// The turn still succeeds; the character apologizes in-band
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sorry, I encountered an error. Please try again.")
}

func TestGetTranscript(t *testing.T) {
	app := newTestApp(t, &fakeDispatcher{})
	session := startSession(t, app)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/chat/sessions/"+session.SessionID, nil)
	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp sessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, session.SessionID, resp.SessionID)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, "Hello *there*!", resp.Messages[0].Content)
}

func TestGetTranscriptUnknownSession(t *testing.T) {
	app := newTestApp(t, &fakeDispatcher{})

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/chat/sessions/no-such-id", nil)
	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
