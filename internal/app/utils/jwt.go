package utils

import (
	"errors"
	"fmt"
	"time"

	"DBsentinel-Gateway/internal/app/ds"

	"github.com/golang-jwt/jwt"
)

const (
	issuer = "dbsentinel"

	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var ErrWrongTokenType = errors.New("wrong token type")

func GenerateAccessToken(user *ds.Users, secret string, expiresIn time.Duration) (string, error) {
	return generateToken(user, TokenTypeAccess, secret, expiresIn)
}

func GenerateRefreshToken(user *ds.Users, secret string, expiresIn time.Duration) (string, error) {
	return generateToken(user, TokenTypeRefresh, secret, expiresIn)
}

func generateToken(user *ds.Users, tokenType, secret string, expiresIn time.Duration) (string, error) {
	now := time.Now()
	claims := ds.JWTClaims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(expiresIn).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    issuer,
			Subject:   user.Login,
		},
		UserID:    user.ID,
		Login:     user.Login,
		TokenType: tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken проверяет подпись, срок действия и тип токена
func ValidateToken(tokenString, secret, tokenType string) (*ds.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ds.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*ds.JWTClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrInvalidKey
	}
	if claims.TokenType != tokenType {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}

// RemainingTTL сколько ещё действует токен
func RemainingTTL(claims *ds.JWTClaims) time.Duration {
	return time.Until(time.Unix(claims.ExpiresAt, 0))
}
