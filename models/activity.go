package models

import (
	"encoding/json"
	"time"
)

// Activity is an append-only ledger entry recording a point-earning action.
// Rows are never updated or deleted.
type Activity struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt       time.Time       `json:"created_at"`
	UserID          uint            `gorm:"not null;index" json:"user_id"`
	User            User            `json:"user" gorm:"foreignKey:UserID"`
	Type            string          `gorm:"not null;type:varchar(50)" json:"type"` // report_submitted, cleanup_joined, volunteer_hours, achievement
	Title           string          `gorm:"not null" json:"title"`
	Description     string          `gorm:"type:text" json:"description"`
	PointsEarned    int             `gorm:"not null;default:0" json:"points_earned"`
	RelatedReportID *uint           `json:"related_report_id"`
	Metadata        json.RawMessage `gorm:"type:jsonb" json:"metadata"`
}
