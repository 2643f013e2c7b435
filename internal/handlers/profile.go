package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shareloop/backend/internal/database"
	"github.com/shareloop/backend/internal/models"
	"github.com/shareloop/backend/internal/util"
)

// GetMyProfile returns the caller's own profile with a few activity counts
func (h *Handlers) GetMyProfile(c *gin.Context) {
	currentUser, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	var itemCount int64
	if err := database.DB.Model(&models.Item{}).Where("owner_id = ?", currentUser.ID).Count(&itemCount).Error; err != nil {
		util.RespondInternalError(c, "failed to load profile counts")
		return
	}

	var favoriteCount int64
	if err := database.DB.Model(&models.Favorite{}).Where("user_id = ?", currentUser.ID).Count(&favoriteCount).Error; err != nil {
		util.RespondInternalError(c, "failed to load profile counts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             currentUser.ID,
		"email":          currentUser.Email,
		"username":       currentUser.Username,
		"display_name":   currentUser.DisplayName,
		"bio":            currentUser.Bio,
		"location":       currentUser.Location,
		"avatar_url":     currentUser.AvatarURL,
		"item_count":     itemCount,
		"favorite_count": favoriteCount,
		"created_at":     currentUser.CreatedAt,
	})
}

// UpdateMyProfile updates the caller's editable profile fields.
// Email, username and moderation state are not editable here.
func (h *Handlers) UpdateMyProfile(c *gin.Context) {
	currentUser, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	var req struct {
		DisplayName *string `json:"display_name"`
		Bio         *string `json:"bio"`
		Location    *string `json:"location"`
		AvatarURL   *string `json:"avatar_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "invalid request body")
		return
	}

	if req.DisplayName != nil {
		name := strings.TrimSpace(*req.DisplayName)
		if name == "" {
			util.RespondValidationError(c, "display_name", "must not be empty")
			return
		}
		if len(name) > 80 {
			util.RespondValidationError(c, "display_name", "must be 80 characters or fewer")
			return
		}
		currentUser.DisplayName = name
	}
	if req.Bio != nil {
		if len(*req.Bio) > 1000 {
			util.RespondValidationError(c, "bio", "must be 1000 characters or fewer")
			return
		}
		currentUser.Bio = *req.Bio
	}
	if req.Location != nil {
		currentUser.Location = *req.Location
	}
	if req.AvatarURL != nil {
		currentUser.AvatarURL = *req.AvatarURL
	}

	if err := database.DB.Save(currentUser).Error; err != nil {
		util.RespondInternalError(c, "failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": currentUser})
}
