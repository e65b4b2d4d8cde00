package redis

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"DBsentinel-Gateway/internal/app/config"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const pingTimeout = 5 * time.Second

// Client хранит сессии, blacklist токенов и кэш статистики
type Client struct {
	client *redis.Client
}

func options(cfg *config.Config) *redis.Options {
	return &redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
}

// NewClient подключается к Redis; без ответа на PING клиент не создаётся
func NewClient(cfg *config.Config) (*Client, error) {
	opts := options(cfg)
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis %s unreachable: %w", opts.Addr, err)
	}

	logrus.Infof("Redis connected at %s (db %d)", opts.Addr, opts.DB)
	return NewFromRedis(rdb), nil
}

func NewFromRedis(client *redis.Client) *Client {
	return &Client{client: client}
}

func (c *Client) Close() error {
	return c.client.Close()
}

// IsNil ключа нет
func IsNil(err error) bool {
	return errors.Is(err, redis.Nil)
}

func (c *Client) put(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *Client) get(ctx context.Context, key string) (string, error) {
	return c.client.Get(ctx, key).Result()
}

func (c *Client) del(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func (c *Client) has(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, key).Result()
	return n > 0, err
}
