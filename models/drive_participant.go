package models

import (
	"time"

	"gorm.io/gorm"
)

// DriveParticipant joins a user to a cleanup drive. At most one row with
// status "registered" exists per (drive, user) pair.
type DriveParticipant struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`

	DriveID uint   `gorm:"not null;index:idx_drive_user" json:"drive_id"`
	Drive   Drive  `json:"drive" gorm:"foreignKey:DriveID"`
	UserID  uint   `gorm:"not null;index:idx_drive_user" json:"user_id"`
	User    User   `json:"user" gorm:"foreignKey:UserID"`
	Status  string `gorm:"not null;default:'registered';type:varchar(20)" json:"status"` // registered, attended, cancelled
}
