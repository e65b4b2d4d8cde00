package ds

import "time"

type Users struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Login     string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"login"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Name      string    `gorm:"type:varchar(255)" json:"name"`
	Username  *string   `gorm:"type:varchar(30);uniqueIndex" json:"username"`
	AvatarURL string    `gorm:"type:varchar(255)" json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SettingsUpdate изменяемые поля профиля; nil означает "не менять"
type SettingsUpdate struct {
	Name     *string
	Username *string
}
