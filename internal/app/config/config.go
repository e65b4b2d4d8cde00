package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const minBackendSecretLen = 32

type Config struct {
	ServiceHost string
	ServicePort int

	// Data backend
	DataBackendURL     string
	DataBackendSecret  string
	DataBackendTimeout time.Duration

	// Search sessions
	SearchDebounce  time.Duration
	SessionTTL      time.Duration
	SessionLimit    int
	SummaryCacheTTL time.Duration

	// JWT Configuration
	JWTSecret        string
	JWTAccessExpire  time.Duration
	JWTRefreshExpire time.Duration

	// Redis Configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// MinIO Configuration
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioPublicURL string

	// Postgres
	DBHost string
	DBPort string
	DBName string
	DBUser string
	DBPass string

	LogLevel  string
	LogFormat string
}

func NewConfig() (*Config, error) {
	var err error

	// Загружаем .env файл
	_ = godotenv.Load()

	// Загружаем TOML конфигурацию
	configName := "config"
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("toml")
	v.AddConfigPath("config")
	v.AddConfigPath(".")
	setDefaults(v)

	err = v.ReadInConfig()
	if err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, err
		}
		log.Warn("config file not found, using defaults and environment")
	}

	cfg := &Config{}
	err = v.Unmarshal(cfg)
	if err != nil {
		return nil, err
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Info("config parsed")

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ServiceHost", "0.0.0.0")
	v.SetDefault("ServicePort", 8080)
	v.SetDefault("DataBackendURL", "http://localhost:8001")
	v.SetDefault("DataBackendTimeout", 15*time.Second)
	v.SetDefault("SearchDebounce", 500*time.Millisecond)
	v.SetDefault("SessionTTL", 30*time.Minute)
	v.SetDefault("SessionLimit", 10000)
	v.SetDefault("SummaryCacheTTL", time.Minute)
	v.SetDefault("LogLevel", "info")
	v.SetDefault("LogFormat", "text")
}

// applyEnv накладывает секреты и адреса из окружения поверх файла конфигурации
func applyEnv(cfg *Config) {
	cfg.DataBackendURL = strings.TrimRight(getEnv("DATA_BACKEND_URL", cfg.DataBackendURL), "/")
	cfg.DataBackendSecret = getEnv("DATA_BACKEND_SECRET", cfg.DataBackendSecret)
	cfg.DataBackendTimeout = getDuration("DATA_BACKEND_TIMEOUT", cfg.DataBackendTimeout)

	// Загружаем JWT конфигурацию из .env
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-default-secret-key-for-development-change-in-production"
		log.Warn("Using default JWT secret - change in production!")
	}
	cfg.JWTSecret = jwtSecret
	cfg.JWTAccessExpire = getDuration("JWT_ACCESS_EXPIRE", 24*time.Hour)
	cfg.JWTRefreshExpire = getDuration("JWT_REFRESH_EXPIRE", 168*time.Hour)

	// Redis конфигурация из .env
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")

	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			redisDB = db
		}
	}
	cfg.RedisDB = redisDB

	cfg.MinioEndpoint = getEnv("MINIO_ENDPOINT", "localhost:9000")
	cfg.MinioAccessKey = getEnv("MINIO_ACCESS_KEY", "minio")
	cfg.MinioSecretKey = getEnv("MINIO_SECRET_KEY", "minio124")
	cfg.MinioUseSSL = getEnv("MINIO_USE_SSL", "false") == "true"
	cfg.MinioPublicURL = strings.TrimRight(getEnv("MINIO_PUBLIC_URL", "http://"+cfg.MinioEndpoint), "/")

	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBName = getEnv("DB_NAME", "dbsentinel")
	cfg.DBUser = getEnv("DB_USER", "dbsentinel")
	cfg.DBPass = getEnv("DB_PASS", "")

	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.DataBackendURL == "" {
		return fmt.Errorf("config: DATA_BACKEND_URL is required")
	}
	if !strings.HasPrefix(c.DataBackendURL, "http://") && !strings.HasPrefix(c.DataBackendURL, "https://") {
		return fmt.Errorf("config: DATA_BACKEND_URL must be an http(s) url, got %q", c.DataBackendURL)
	}
	if len(c.DataBackendSecret) < minBackendSecretLen {
		// Бэкенд всё равно отклонит запрос, ошибка будет видна как upstream failure
		log.Warnf("DATA_BACKEND_SECRET is shorter than %d characters", minBackendSecretLen)
	}
	if c.DataBackendTimeout <= 0 {
		return fmt.Errorf("config: DataBackendTimeout must be positive")
	}
	if c.SearchDebounce < 0 {
		return fmt.Errorf("config: SearchDebounce must not be negative")
	}
	if c.SessionLimit <= 0 {
		return fmt.Errorf("config: SessionLimit must be positive")
	}
	return nil
}

// DSN формирует строку подключения к Postgres
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPass, c.DBName)
}

// Addr возвращает адрес, на котором слушает сервис
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.ServiceHost, c.ServicePort)
}

// ConfigureLogger настраивает logrus по конфигурации
func (c *Config) ConfigureLogger() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if strings.EqualFold(c.LogFormat, "json") {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

// getEnv вспомогательная функция для получения environment variables
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if exp := os.Getenv(key); exp != "" {
		if parsed, err := time.ParseDuration(exp); err == nil {
			return parsed
		}
	}
	return defaultValue
}
