package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shareloop/backend/internal/auditlog"
	"github.com/shareloop/backend/internal/database"
	"github.com/shareloop/backend/internal/models"
	"github.com/shareloop/backend/internal/util"
)

// ListUsers returns a paginated member list for the admin console.
// ?q= matches email or username (case-insensitive substring).
func (h *Handlers) ListUsers(c *gin.Context) {
	page, perPage := util.ParsePagination(c.Query("page"), c.Query("per_page"), 100)

	query := database.DB.Model(&models.User{})
	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where("LOWER(email) LIKE LOWER(?) OR LOWER(username) LIKE LOWER(?)", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		util.RespondInternalError(c, "failed to count users")
		return
	}

	var users []models.User
	err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&users).Error
	if err != nil {
		util.RespondInternalError(c, "failed to list users")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":    users,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}

// BanUser suspends a member account
func (h *Handlers) BanUser(c *gin.Context) {
	h.setUserBanned(c, true)
}

// UnbanUser lifts a suspension
func (h *Handlers) UnbanUser(c *gin.Context) {
	h.setUserBanned(c, false)
}

func (h *Handlers) setUserBanned(c *gin.Context, banned bool) {
	userID := c.Param("id")

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		util.RespondNotFound(c, "user")
		return
	}

	action := "user.unban"
	if banned {
		action = "user.ban"
		// Admins are demoted before suspension; a banned admin must not
		// retain console access if unbanned by someone else later.
		if user.IsAdmin {
			util.RespondBadRequest(c, "cannot ban an administrator; demote first")
			return
		}
	}

	user.IsBanned = banned
	if err := database.DB.Save(&user).Error; err != nil {
		util.RespondInternalError(c, "failed to update user")
		return
	}

	h.audit.Record(c, auditlog.Entry{
		Action:     action,
		TargetType: "user",
		TargetID:   user.ID,
	})

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// PromoteUser grants the admin flag to a member
func (h *Handlers) PromoteUser(c *gin.Context) {
	h.setUserAdmin(c, true)
}

// DemoteUser revokes the admin flag
func (h *Handlers) DemoteUser(c *gin.Context) {
	h.setUserAdmin(c, false)
}

func (h *Handlers) setUserAdmin(c *gin.Context, admin bool) {
	userID := c.Param("id")

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		util.RespondNotFound(c, "user")
		return
	}

	action := "user.demote"
	if admin {
		action = "user.promote"
	}

	user.IsAdmin = admin
	if err := database.DB.Save(&user).Error; err != nil {
		util.RespondInternalError(c, "failed to update user")
		return
	}

	h.audit.Record(c, auditlog.Entry{
		Action:     action,
		TargetType: "user",
		TargetID:   user.ID,
	})

	c.JSON(http.StatusOK, gin.H{"user": user})
}
