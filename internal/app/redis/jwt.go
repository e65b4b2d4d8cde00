package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"DBsentinel-Gateway/internal/app/ds"

	"github.com/go-redis/redis/v8"
)

const (
	// Префиксы для ключей Redis
	blacklistPrefix    = "jwt:blacklist:"
	userSessionPrefix  = "user:session:"
	refreshTokenPrefix = "refresh:token:"
)

func userKey(prefix string, userID uint) string {
	return prefix + strconv.FormatUint(uint64(userID), 10)
}

// AddToBlacklist добавляет JWT токен в черный список до конца срока его действия
func (c *Client) AddToBlacklist(ctx context.Context, token string, expiresIn time.Duration) error {
	if expiresIn <= 0 {
		return nil
	}
	return c.put(ctx, blacklistPrefix+token, "blacklisted", expiresIn)
}

// IsInBlacklist проверяет, находится ли токен в черном списке
func (c *Client) IsInBlacklist(ctx context.Context, token string) (bool, error) {
	exists, err := c.has(ctx, blacklistPrefix+token)
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}
	return exists, nil
}

// SaveRefreshToken хранится один refresh token на пользователя
func (c *Client) SaveRefreshToken(ctx context.Context, userID uint, refreshToken string, expiresIn time.Duration) error {
	return c.put(ctx, userKey(refreshTokenPrefix, userID), refreshToken, expiresIn)
}

func (c *Client) GetRefreshToken(ctx context.Context, userID uint) (string, error) {
	return c.get(ctx, userKey(refreshTokenPrefix, userID))
}

func (c *Client) DeleteRefreshToken(ctx context.Context, userID uint) error {
	return c.del(ctx, userKey(refreshTokenPrefix, userID))
}

// SaveUserSession сохраняет сведения о входе пользователя
func (c *Client) SaveUserSession(ctx context.Context, user *ds.Users, ipAddress string, expiresIn time.Duration) error {
	key := userKey(userSessionPrefix, user.ID)

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			"user_id", user.ID,
			"login", user.Login,
			"login_time", time.Now().Format(time.RFC3339),
			"ip_address", ipAddress,
		)
		pipe.Expire(ctx, key, expiresIn)
		return nil
	})
	return err
}

func (c *Client) DeleteUserSession(ctx context.Context, userID uint) error {
	return c.del(ctx, userKey(userSessionPrefix, userID))
}
