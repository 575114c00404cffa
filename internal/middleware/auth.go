package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ShreyaKadian/InternetButFun/internal/identity"
	"github.com/ShreyaKadian/InternetButFun/pkg/logger"
)

// Ключи контекста gin для проверенной личности
const (
	ContextUserUID   = "user_uid"
	ContextUserEmail = "user_email"
)

// AuthMiddleware валидирует bearer-токены внешнего Auth-провайдера
type AuthMiddleware struct {
	verifier identity.Verifier
	log      logger.Logger
}

func NewAuthMiddleware(verifier identity.Verifier, log logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, log: log}
}

// RequireAuth требует валидный токен в заголовке Authorization
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			m.log.Warn("Missing Authorization header", "path", c.Request.URL.Path)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			m.log.Warn("Invalid Authorization header format")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		ident, err := m.verifier.Verify(c.Request.Context(), parts[1])
		if err != nil {
			m.log.Warn("Token validation failed", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Set(ContextUserUID, ident.UID)
		c.Set(ContextUserEmail, ident.Email)

		c.Next()
	}
}

// UserUID достает UID проверенной личности из контекста запроса
func UserUID(c *gin.Context) string {
	return c.GetString(ContextUserUID)
}
