package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"roleplay-chat/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authTestEngine(t *testing.T, handler gin.HandlerFunc) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := jwt.NewService("test-secret", time.Hour)
	token, err := svc.GenerateToken("user-1", "user@example.com")
	require.NoError(t, err)

	engine := gin.New()
	engine.GET("/protected", RequireAuth(svc), handler)
	engine.GET("/open", OptionalAuth(svc), handler)
	return engine, token
}

func whoAmI(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"userId": CurrentUserID(c)})
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	engine, token := authTestEngine(t, whoAmI)

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":"user-1"`)
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	engine, _ := authTestEngine(t, whoAmI)

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthRejectsBadToken(t *testing.T) {
	engine, _ := authTestEngine(t, whoAmI)

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuthAllowsAnonymous(t *testing.T) {
	engine, _ := authTestEngine(t, whoAmI)

	req, _ := http.NewRequest(http.MethodGet, "/open", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":""`)
}

func TestOptionalAuthExtractsIdentity(t *testing.T) {
	engine, token := authTestEngine(t, whoAmI)

	req, _ := http.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":"user-1"`)
}
