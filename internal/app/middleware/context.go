package middleware

import (
	"DBsentinel-Gateway/internal/app/ds"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey = "user_id"
	loginKey  = "login"
	claimsKey = "claims"
)

// GetUserID возвращает ID пользователя из контекста
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

func GetLogin(c *gin.Context) (string, bool) {
	login, exists := c.Get(loginKey)
	if !exists {
		return "", false
	}
	s, ok := login.(string)
	return s, ok
}

// GetClaims возвращает разобранный access token
func GetClaims(c *gin.Context) (*ds.JWTClaims, bool) {
	v, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*ds.JWTClaims)
	return claims, ok
}
