package repository

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"DBsentinel-Gateway/internal/app/ds"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	minUsernameLen = 4
	maxUsernameLen = 30
	minPasswordLen = 6
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLoginTaken         = errors.New("login already taken")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidUsername    = fmt.Errorf("username must be %d to %d characters", minUsernameLen, maxUsernameLen)
	ErrInvalidPassword    = fmt.Errorf("password must be at least %d characters", minPasswordLen)
	ErrAvatarUnavailable  = errors.New("avatar storage is not configured")
)

type UserRepository struct {
	db      *gorm.DB
	avatars *AvatarStorage
}

func NewUserRepository(db *gorm.DB, avatars *AvatarStorage) *UserRepository {
	return &UserRepository{
		db:      db,
		avatars: avatars,
	}
}

// RegisterUser хэширует пароль и создаёт пользователя
func (r *UserRepository) RegisterUser(user *ds.Users) error {
	user.Login = strings.TrimSpace(user.Login)
	if user.Login == "" {
		return ErrInvalidCredentials
	}
	if len(user.Password) < minPasswordLen {
		return ErrInvalidPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = string(hash)

	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrLoginTaken
		}
		return err
	}
	return nil
}

// AuthenticateUser проверяет логин и пароль
func (r *UserRepository) AuthenticateUser(login, password string) (*ds.Users, error) {
	var user ds.Users
	err := r.db.Where("login = ?", login).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (r *UserRepository) GetUserByID(id uint) (*ds.Users, error) {
	var user ds.Users
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateSettings меняет имя и username. Пустое имя означает "без изменений".
// Уникальность username проверяет база: нарушение индекса приходит как gorm.ErrDuplicatedKey.
func (r *UserRepository) UpdateSettings(id uint, upd ds.SettingsUpdate) (*ds.Users, error) {
	updates := make(map[string]interface{})
	if upd.Name != nil {
		if name := strings.TrimSpace(*upd.Name); name != "" {
			updates["name"] = name
		}
	}
	if upd.Username != nil {
		username := strings.TrimSpace(*upd.Username)
		if n := utf8.RuneCountInString(username); n < minUsernameLen || n > maxUsernameLen {
			return nil, ErrInvalidUsername
		}
		updates["username"] = username
	}

	var user ds.Users
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&user).Updates(updates).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, ErrUsernameTaken
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if name, ok := updates["name"].(string); ok {
		user.Name = name
	}
	if username, ok := updates["username"].(string); ok {
		user.Username = &username
	}
	return &user, nil
}

// UpdateAvatar загружает новый аватар и удаляет старый
func (r *UserRepository) UpdateAvatar(ctx context.Context, id uint, fileHeader *multipart.FileHeader) (*ds.Users, error) {
	if r.avatars == nil {
		return nil, ErrAvatarUnavailable
	}

	var user ds.Users
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}

		fileName := strings.ToLower(fmt.Sprintf("avatar_%d_%d%s", id, time.Now().Unix(), filepath.Ext(fileHeader.Filename)))
		imageURL, err := r.avatars.Save(ctx, fileName, fileHeader)
		if err != nil {
			return err
		}

		previous := user.AvatarURL
		if err := tx.Model(&user).Update("avatar_url", imageURL).Error; err != nil {
			return err
		}
		user.AvatarURL = imageURL

		if previous != "" {
			if err := r.avatars.Delete(ctx, previous); err != nil {
				logrus.Warnf("failed to delete previous avatar of user %d: %v", id, err)
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
