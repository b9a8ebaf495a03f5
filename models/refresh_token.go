package models

import (
	"time"

	"gorm.io/gorm"
)

type RefreshToken struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`

	UserID         uint      `gorm:"not null;index" json:"user_id"`
	User           User      `json:"user" gorm:"foreignKey:UserID"`
	Token          string    `gorm:"not null" json:"token"`
	ExpirationDate time.Time `gorm:"not null" json:"expiry"`
}
