package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAdminTestRouter(apiKey string) *gin.Engine {
	router := gin.New()
	mw := NewAdminKeyMiddleware(apiKey)
	router.GET("/admin/ping", mw.RequireAdminKey(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return router
}

func TestRequireAdminKey_MissingKey(t *testing.T) {
	// Arrange
	router := newAdminTestRouter("secret-key")
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/ping", nil)

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, w.Code, "Запрос без ключа должен получить 401")
}

func TestRequireAdminKey_WrongKey(t *testing.T) {
	// Arrange
	router := newAdminTestRouter("secret-key")
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("X-Admin-Key", "wrong-key")

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, w.Code, "Запрос с неверным ключом должен получить 401")
}

func TestRequireAdminKey_ValidKey(t *testing.T) {
	// Arrange
	router := newAdminTestRouter("secret-key")
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("X-Admin-Key", "secret-key")

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExtractUintParam(t *testing.T) {
	// Arrange
	router := gin.New()
	router.GET("/pools/:id", ExtractUintParam("id", "poolID"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pool_id": c.MustGet("poolID").(uint)})
	})

	// Act & Assert: валидный числовой параметр
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/pools/42", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Act & Assert: нечисловой параметр отклоняется
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/pools/abc", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
