package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cleanflow-mumbai/api-go/models"
	"github.com/cleanflow-mumbai/api-go/types"
	"github.com/cleanflow-mumbai/api-go/utils"
	"gorm.io/gorm"
)

type ProfileController struct {
	DB *gorm.DB
}

func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{DB: db}
}

// EnsureProfile fetches the profile for the given user and creates one when
// absent, seeded with the identity metadata and a Mumbai default location.
// The unique index on user_id makes concurrent creation attempts collapse to
// a single row: the loser re-fetches instead of failing.
func EnsureProfile(db *gorm.DB, user *models.User) (*models.Profile, error) {
	var profile models.Profile
	err := db.Where("user_id = ?", user.ID).First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if classified := models.ClassifyDBError(err); classified != models.ErrNotFound {
		log.Printf("profile fetch failed for user %d: %v", user.ID, err)
		return nil, classified
	}

	var avatarURL *string
	if user.AvatarURL != "" {
		avatarURL = &user.AvatarURL
	}

	profile = models.Profile{
		UserID:    user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		AvatarURL: avatarURL,
		Location:  "Mumbai",
	}

	if err := db.Create(&profile).Error; err != nil {
		if models.ClassifyDBError(err) == models.ErrConflict {
			// Lost the creation race; the winner's row is the profile.
			if refetchErr := db.Where("user_id = ?", user.ID).First(&profile).Error; refetchErr == nil {
				return &profile, nil
			}
		}
		log.Printf("profile create failed for user %d: %v", user.ID, err)
		return nil, models.ClassifyDBError(err)
	}

	return &profile, nil
}

func (pc *ProfileController) GetProfile(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context", "success": false})
		return
	}

	var profile models.Profile
	if err := pc.DB.Where("user_id = ?", user.UserID).First(&profile).Error; err != nil {
		if models.ClassifyDBError(err) == models.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found", "success": false})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile", "success": false})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: profile})
}

func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context", "success": false})
		return
	}

	var input struct {
		FullName  *string `json:"full_name"`
		AvatarURL *string `json:"avatar_url"`
		Location  *string `json:"location"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var profile models.Profile
	if err := pc.DB.Where("user_id = ?", user.UserID).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found", "success": false})
		return
	}

	updates := map[string]interface{}{}
	if input.FullName != nil {
		updates["full_name"] = *input.FullName
	}
	if input.AvatarURL != nil {
		updates["avatar_url"] = *input.AvatarURL
	}
	if input.Location != nil {
		updates["location"] = *input.Location
	}

	if len(updates) > 0 {
		if err := pc.DB.Model(&profile).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile", "success": false})
			return
		}
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    profile,
		Message: "Profile updated successfully",
	})
}

func (pc *ProfileController) GetUserProfile(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id", "success": false})
		return
	}

	var profile models.Profile
	if err := pc.DB.Where("user_id = ?", uint(userID)).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found", "success": false})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: profile})
}

// bumpProfileCounters applies impact score and counter deltas atomically at
// the SQL level and recomputes the level label from the fresh score.
func bumpProfileCounters(db *gorm.DB, userID uint, column string, delta int, points int) error {
	updates := map[string]interface{}{
		"impact_score": gorm.Expr("GREATEST(impact_score + ?, 0)", points),
	}
	if column != "" {
		updates[column] = gorm.Expr("GREATEST("+column+" + ?, 0)", delta)
	}

	if err := db.Model(&models.Profile{}).Where("user_id = ?", userID).Updates(updates).Error; err != nil {
		return err
	}

	var profile models.Profile
	if err := db.Select("id, impact_score, eco_hero_level").Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return err
	}

	level := types.EcoHeroLevel(profile.ImpactScore)
	if level != profile.EcoHeroLevel {
		return db.Model(&models.Profile{}).Where("user_id = ?", userID).
			Update("eco_hero_level", level).Error
	}
	return nil
}
