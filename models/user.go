package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at"`
	Email         string         `gorm:"unique;not null" json:"email"`
	Password      *string        `json:"-"` // nil for OAuth-only accounts
	FullName      string         `json:"full_name"`
	AvatarURL     string         `json:"avatar_url"`
	GoogleID      *string        `gorm:"unique" json:"-"`
	Provider      string         `gorm:"default:'email'" json:"provider"`
	Role          Role           `json:"role" gorm:"foreignKey:RoleID"`
	RoleID        uint           `json:"role_id"`
	RefreshTokens []RefreshToken `json:"-" gorm:"foreignKey:UserID"`
	Profile       *Profile       `json:"profile,omitempty" gorm:"foreignKey:UserID"`
	EmailVerified bool           `json:"email_verified"`
}
