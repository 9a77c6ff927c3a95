package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newAuthEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", RequireAuth(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c)})
	})
	r.GET("/admin", RequireAuth(testSecret), RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func doGet(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	r := newAuthEngine()
	w := doGet(r, "/private", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthAcceptsBearerToken(t *testing.T) {
	r := newAuthEngine()

	token, err := GenerateToken(7, "user@example.com", "user", testSecret, time.Hour)
	require.NoError(t, err)

	w := doGet(r, "/private", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
}

func TestRequireAuthAcceptsCookie(t *testing.T) {
	r := newAuthEngine()

	token, err := GenerateToken(3, "user@example.com", "user", testSecret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuthRejectsExpiredToken(t *testing.T) {
	r := newAuthEngine()

	token, err := GenerateToken(7, "user@example.com", "user", testSecret, -time.Minute)
	require.NoError(t, err)

	w := doGet(r, "/private", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthRejectsWrongSecret(t *testing.T) {
	r := newAuthEngine()

	token, err := GenerateToken(7, "user@example.com", "user", "another-secret", time.Hour)
	require.NoError(t, err)

	w := doGet(r, "/private", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	r := newAuthEngine()

	userToken, err := GenerateToken(1, "user@example.com", "user", testSecret, time.Hour)
	require.NoError(t, err)
	adminToken, err := GenerateToken(2, "admin@example.com", "admin", testSecret, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, doGet(r, "/admin", userToken).Code)
	assert.Equal(t, http.StatusOK, doGet(r, "/admin", adminToken).Code)
}
