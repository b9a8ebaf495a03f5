package controllers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cleanflow-mumbai/api-go/models"
	"github.com/cleanflow-mumbai/api-go/utils"
	"gorm.io/gorm"
)

type LeaderboardController struct {
	DB *gorm.DB
}

type LeaderboardQuery struct {
	Page     int `form:"page,default=1" binding:"min=1"`
	PageSize int `form:"pageSize,default=10" binding:"min=1,max=50"`
}

// LeaderboardEntry is one ranked row.
type LeaderboardEntry struct {
	UserID       uint   `json:"user_id" gorm:"column:user_id"`
	FullName     string `json:"full_name" gorm:"column:full_name"`
	AvatarURL    string `json:"avatar_url" gorm:"column:avatar_url"`
	Location     string `json:"location" gorm:"column:location"`
	EcoHeroLevel string `json:"eco_hero_level" gorm:"column:eco_hero_level"`
	ImpactScore  int    `json:"impact_score" gorm:"column:impact_score"`
	Rank         int    `json:"rank" gorm:"column:rank"`
}

func NewLeaderboardController(db *gorm.DB) *LeaderboardController {
	return &LeaderboardController{DB: db}
}

// rankedProfiles returns a fresh ranked select over all profiles.
func (lc *LeaderboardController) rankedProfiles() *gorm.DB {
	return lc.DB.Model(&models.Profile{}).
		Select("profiles.user_id, profiles.full_name, profiles.avatar_url, profiles.location, profiles.eco_hero_level, profiles.impact_score, RANK() OVER (ORDER BY profiles.impact_score DESC) as rank")
}

func (lc *LeaderboardController) GetLeaderboard(c *gin.Context) {
	var query LeaderboardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	user := utils.GetUser(c)

	var count int64
	if err := lc.DB.Model(&models.Profile{}).Count(&count).Error; err != nil {
		if models.ClassifyDBError(err) == models.ErrTableMissing {
			c.JSON(http.StatusOK, gin.H{"success": true, "leaderboard": []LeaderboardEntry{}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting profiles: " + err.Error(), "success": false})
		return
	}

	offset := (query.Page - 1) * query.PageSize

	var entries []LeaderboardEntry
	if err := lc.rankedProfiles().Order("rank").Offset(offset).Limit(query.PageSize).Scan(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching leaderboard: " + err.Error(), "success": false})
		return
	}

	// The caller's own rank, independent of the requested page. The ranked
	// subquery is a fresh chain so the page's offset and limit cannot leak
	// into it.
	var userRank LeaderboardEntry
	err := lc.DB.Table("(?) as ranked", lc.rankedProfiles()).
		Where("ranked.user_id = ?", user.UserID).
		Limit(1).
		Scan(&userRank).Error

	if err != nil || userRank.UserID == 0 {
		userRank = LeaderboardEntry{UserID: user.UserID, Rank: 0}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"leaderboard": entries,
		"user_rank":   userRank,
		"pagination": gin.H{
			"current_page": query.Page,
			"page_size":    query.PageSize,
			"total_items":  count,
			"total_pages":  math.Ceil(float64(count) / float64(query.PageSize)),
		},
	})
}

// RecomputeRanks persists rank_position for every profile in one ranked
// update instead of a row-per-row loop.
func (lc *LeaderboardController) RecomputeRanks(c *gin.Context) {
	err := lc.DB.Exec(`
		UPDATE profiles SET rank_position = ranked.rank
		FROM (
			SELECT id, RANK() OVER (ORDER BY impact_score DESC) as rank
			FROM profiles
			WHERE deleted_at IS NULL
		) ranked
		WHERE profiles.id = ranked.id`).Error

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to recompute ranks", "success": false})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Rankings recomputed"})
}
