package middleware

import (
	"crypto/subtle"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminKeyMiddleware защищает административные маршруты статическим ключом API.
// Ключ передается в заголовке X-Admin-Key и задается через конфигурацию
// (переменная окружения ADMIN_API_KEY).
type AdminKeyMiddleware struct {
	apiKey string
}

// NewAdminKeyMiddleware создает новый middleware проверки ключа администратора
func NewAdminKeyMiddleware(apiKey string) *AdminKeyMiddleware {
	return &AdminKeyMiddleware{apiKey: apiKey}
}

// RequireAdminKey проверяет заголовок X-Admin-Key.
// Сравнение ключей выполняется за постоянное время.
func (m *AdminKeyMiddleware) RequireAdminKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader("X-Admin-Key")
		if provided == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin API key required"})
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(m.apiKey)) != 1 {
			log.Printf("[AdminKeyMiddleware] Неверный ключ администратора с IP %s", c.ClientIP())
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin API key"})
			c.Abort()
			return
		}

		c.Next()
	}
}
