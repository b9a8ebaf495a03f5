package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cleanflow-mumbai/api-go/models"
	"github.com/cleanflow-mumbai/api-go/utils"
)

// EnsureOwnProfile is the idempotent create-if-absent endpoint backing the
// client's profile reconciliation. Calling it with an existing profile
// returns that profile unchanged.
func (pc *ProfileController) EnsureOwnProfile(c *gin.Context) {
	claims := utils.GetUser(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context", "success": false})
		return
	}

	var user models.User
	if err := pc.DB.First(&user, claims.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found", "success": false})
		return
	}

	profile, err := EnsureProfile(pc.DB, &user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to ensure profile", "success": false})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: profile})
}
