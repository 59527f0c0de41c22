package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newGuardedRouter(key string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(APIKey(key))
	router.GET("/guarded", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func getWithKey(router *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if key != "" {
		req.Header.Set("X-Api-Key", key)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAPIKeyDisabledWhenEmpty(t *testing.T) {
	router := newGuardedRouter("")

	assert.Equal(t, http.StatusOK, getWithKey(router, "").Code)
	assert.Equal(t, http.StatusOK, getWithKey(router, "anything").Code)
}

func TestAPIKeyRejectsMissingOrWrongKey(t *testing.T) {
	router := newGuardedRouter("secret")

	assert.Equal(t, http.StatusUnauthorized, getWithKey(router, "").Code)
	assert.Equal(t, http.StatusUnauthorized, getWithKey(router, "wrong").Code)
}

func TestAPIKeyAcceptsCorrectKey(t *testing.T) {
	router := newGuardedRouter("secret")

	assert.Equal(t, http.StatusOK, getWithKey(router, "secret").Code)
}
