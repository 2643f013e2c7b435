package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shareloop/backend/internal/database"
	"github.com/shareloop/backend/internal/models"
	"github.com/shareloop/backend/internal/util"
)

// ListAuditLogs returns the audit trail, newest first. Read-only: there is
// deliberately no endpoint that updates or deletes audit rows.
// Filters: ?admin_id= and ?action=.
func (h *Handlers) ListAuditLogs(c *gin.Context) {
	page, perPage := util.ParsePagination(c.Query("page"), c.Query("per_page"), 100)

	query := database.DB.Model(&models.AdminLog{}).Preload("Admin")
	if adminID := c.Query("admin_id"); adminID != "" {
		query = query.Where("admin_id = ?", adminID)
	}
	if action := c.Query("action"); action != "" {
		query = query.Where("action = ?", action)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		util.RespondInternalError(c, "failed to count audit logs")
		return
	}

	var logs []models.AdminLog
	err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&logs).Error
	if err != nil {
		util.RespondInternalError(c, "failed to list audit logs")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":     logs,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}
