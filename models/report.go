package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Report struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`

	UserID       uint           `gorm:"not null;index" json:"user_id"`
	User         User           `json:"user" gorm:"foreignKey:UserID"`
	Title        string         `gorm:"not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	LocationName string         `gorm:"not null" json:"location_name"`
	Latitude     float64        `gorm:"not null;type:decimal(10,8)" json:"latitude"`
	Longitude    float64        `gorm:"not null;type:decimal(11,8)" json:"longitude"`
	Severity     string         `gorm:"not null;type:varchar(20)" json:"severity"` // low, moderate, severe
	Status       string         `gorm:"not null;default:'pending';type:varchar(20)" json:"status"` // pending, approved, rejected, resolved
	Type         string         `gorm:"not null;default:'pollution';type:varchar(20)" json:"type"` // pollution, cleanup
	Photos       pq.StringArray `json:"photos" gorm:"type:text[]"`
	ReviewedAt   *time.Time     `json:"reviewed_at"`
	ReviewedBy   *uint          `json:"reviewed_by"`
}
