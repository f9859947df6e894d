package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCharacters(t *testing.T) {
	app := newTestApp(t, &fakeDispatcher{})

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/characters", nil)
	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Characters []struct {
			Name string   `json:"name"`
			Tags []string `json:"tags"`
		} `json:"characters"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Characters, 1)
	assert.Equal(t, "Aria", body.Characters[0].Name)
	assert.Equal(t, []string{"fantasy"}, body.Characters[0].Tags)
}

func TestGetCharacter(t *testing.T) {
	app := newTestApp(t, &fakeDispatcher{})

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/characters/aria", nil)
	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"urlName":"aria"`)
}

func TestGetCharacterNotFound(t *testing.T) {
	app := newTestApp(t, &fakeDispatcher{})

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/characters/nobody", nil)
	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func characterForm(t *testing.T, fields map[string]string, withImage bool) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if withImage {
		part, err := writer.CreatePart(textproto.MIMEHeader{
			"Content-Disposition": {`form-data; name="image"; filename="portrait.png"`},
			"Content-Type":        {"image/png"},
		})
		require.NoError(t, err)
		_, err = part.Write([]byte("png-bytes"))
		require.NoError(t, err)
	}

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func TestCreateCharacter(t *testing.T) {
	app := newTestApp(t, &fakeDispatcher{})

	body, contentType := characterForm(t, map[string]string{
		"name":          "New Face",
		"bio":           "a newcomer",
		"first_message": "Hi!",
		"tags":          "drama, slice of life",
	}, true)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/characters", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	require.Len(t, app.store.created, 1)
	created := app.store.created[0]
	assert.Equal(t, "New Face", created.Name)
	assert.Equal(t, "a newcomer", created.Bio)
	assert.Equal(t, []string{"drama", "slice of life"}, created.Tags)
}

func TestCreateCharacterWithoutImage(t *testing.T) {
	app := newTestApp(t, &fakeDispatcher{})

	body, contentType := characterForm(t, map[string]string{"name": "New Face"}, false)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/characters", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	assert.Empty(t, app.store.created)
}

func TestCreateCharacterWithoutName(t *testing.T) {
	app := newTestApp(t, &fakeDispatcher{})

	body, contentType := characterForm(t, map[string]string{"bio": "anonymous"}, true)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/characters", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"name"`)
}
