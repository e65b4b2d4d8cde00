package repository

import (
	"DBsentinel-Gateway/internal/app/config"
	"DBsentinel-Gateway/internal/app/redis"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Repository struct {
	db          *gorm.DB
	redisClient *redis.Client
	User        *UserRepository
}

func NewRepository(cfg *config.Config) (*Repository, error) {
	// Нарушения ограничений приходят как gorm.ErrDuplicatedKey и т.п.
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	// Инициализируем Redis клиент
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		logrus.Warnf("Failed to initialize Redis client: %v", err)
		// Продолжаем без Redis, но логируем предупреждение
		redisClient = nil
	}

	avatars, err := NewAvatarStorage(cfg)
	if err != nil {
		return nil, err
	}

	return New(db, redisClient, avatars), nil
}

// New собирает репозиторий из готовых подключений. redisClient и avatars могут быть nil.
func New(db *gorm.DB, redisClient *redis.Client, avatars *AvatarStorage) *Repository {
	return &Repository{
		db:          db,
		redisClient: redisClient,
		User:        NewUserRepository(db, avatars),
	}
}

// GetRedisClient возвращает Redis клиент
func (r *Repository) GetRedisClient() *redis.Client {
	if r == nil {
		return nil
	}
	return r.redisClient
}

// Close закрывает все соединения
func (r *Repository) Close() {
	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			logrus.Errorf("Error closing Redis client: %v", err)
		}
	}
	if r.db != nil {
		if sqlDB, err := r.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logrus.Errorf("Error closing database: %v", err)
			}
		}
	}
}
