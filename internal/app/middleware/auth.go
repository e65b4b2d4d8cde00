package middleware

import (
	"net/http"
	"strings"

	"DBsentinel-Gateway/internal/app/config"
	"DBsentinel-Gateway/internal/app/redis"
	"DBsentinel-Gateway/internal/app/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	jwtPrefix = "Bearer "
)

// BlacklistChecker хранилище отозванных токенов
type BlacklistChecker interface {
	GetRedisClient() *redis.Client
}

// AuthMiddleware проверяет JWT токен и добавляет пользователя в контекст
func AuthMiddleware(cfg *config.Config, repo BlacklistChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := BearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Bearer token required"})
			c.Abort()
			return
		}

		// Проверяем токен в blacklist (если Redis доступен)
		if rc := repo.GetRedisClient(); rc != nil {
			inBlacklist, err := rc.IsInBlacklist(c.Request.Context(), tokenString)
			if err != nil {
				logrus.Error("Failed to check token in blacklist: ", err)
			} else if inBlacklist {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is invalidated"})
				c.Abort()
				return
			}
		}

		claims, err := utils.ValidateToken(tokenString, cfg.JWTSecret, utils.TokenTypeAccess)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(loginKey, claims.Login)
		c.Set(claimsKey, claims)

		logrus.Debugf("User authenticated: %s (ID: %d)", claims.Login, claims.UserID)

		c.Next()
	}
}

// BearerToken извлекает токен из заголовка Authorization
func BearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, jwtPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, jwtPrefix))
	return token, token != ""
}
