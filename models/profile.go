package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile is the application-level record for a user, distinct from the
// auth identity. It is created lazily the first time a user signs in and
// carries the gamification counters that drive the leaderboard.
type Profile struct {
	ID                  uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"deleted_at"`
	UserID              uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	Email               string         `gorm:"not null" json:"email"`
	FullName            string         `json:"full_name"`
	AvatarURL           *string        `json:"avatar_url"`
	Location            string         `gorm:"default:'Mumbai'" json:"location"`
	MemberSince         time.Time      `gorm:"autoCreateTime" json:"member_since"`
	ImpactScore         int            `gorm:"default:0" json:"impact_score"`
	EcoHeroLevel        string         `gorm:"default:'Beginner'" json:"eco_hero_level"`
	ReportsSubmitted    int            `gorm:"default:0" json:"reports_submitted"`
	CleanupDrivesJoined int            `gorm:"default:0" json:"cleanup_drives_joined"`
	VolunteerHours      int            `gorm:"default:0" json:"volunteer_hours"`
	RankPosition        *int           `json:"rank_position"`
}
