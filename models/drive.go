package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Drive struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`

	OrganizerID         uint           `gorm:"not null;index" json:"organizer_id"`
	Organizer           User           `json:"organizer" gorm:"foreignKey:OrganizerID"`
	OrganizerType       string         `gorm:"not null;default:'community';type:varchar(20)" json:"organizer_type"` // ngo, community, corporate
	Title               string         `gorm:"not null" json:"title"`
	Description         string         `gorm:"type:text" json:"description"`
	LocationName        string         `gorm:"not null" json:"location_name"`
	Latitude            float64        `gorm:"not null;type:decimal(10,8)" json:"latitude"`
	Longitude           float64        `gorm:"not null;type:decimal(11,8)" json:"longitude"`
	Date                time.Time      `gorm:"not null" json:"date"`
	StartTime           string         `gorm:"type:varchar(10)" json:"start_time"`
	DurationHours       int            `gorm:"not null;default:3" json:"duration_hours"`
	MaxVolunteers       int            `gorm:"not null;default:50" json:"max_volunteers"`
	RegisteredVolunteers int           `gorm:"not null;default:0" json:"registered_volunteers"`
	Status              string         `gorm:"not null;default:'upcoming';type:varchar(20)" json:"status"` // upcoming, ongoing, completed, cancelled
	Tags                pq.StringArray `json:"tags" gorm:"type:text[]"`
	Images              pq.StringArray `json:"images" gorm:"type:text[]"`
	IsVerified          bool           `gorm:"default:false" json:"is_verified"`
}
