package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shareloop/backend/internal/auditlog"
	"github.com/shareloop/backend/internal/database"
	"github.com/shareloop/backend/internal/models"
	"github.com/shareloop/backend/internal/util"
)

// ListReports returns reports for the moderation queue, newest first.
// ?status= filters by workflow state; defaults to all.
func (h *Handlers) ListReports(c *gin.Context) {
	page, perPage := util.ParsePagination(c.Query("page"), c.Query("per_page"), 100)

	query := database.DB.Model(&models.Report{}).Preload("Reporter")
	if status := c.Query("status"); status != "" {
		if !models.ReportStatus(status).Valid() {
			util.RespondValidationError(c, "status", "unknown report status")
			return
		}
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		util.RespondInternalError(c, "failed to count reports")
		return
	}

	var reports []models.Report
	err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&reports).Error
	if err != nil {
		util.RespondInternalError(c, "failed to list reports")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reports":  reports,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}

// UpdateReportStatus moves a report through the moderation workflow and
// records who reviewed it.
func (h *Handlers) UpdateReportStatus(c *gin.Context) {
	reportID := c.Param("id")

	var req struct {
		Status      string `json:"status" binding:"required"`
		ActionTaken string `json:"action_taken"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "status is required")
		return
	}

	status := models.ReportStatus(req.Status)
	if !status.Valid() {
		util.RespondValidationError(c, "status", "must be one of: pending, reviewed, resolved, dismissed")
		return
	}

	var report models.Report
	if err := database.DB.Where("id = ?", reportID).First(&report).Error; err != nil {
		util.RespondNotFound(c, "report")
		return
	}

	adminID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	previous := report.Status
	report.Status = status
	report.ModeratorID = &adminID
	if req.ActionTaken != "" {
		report.ActionTaken = req.ActionTaken
	}

	if err := database.DB.Save(&report).Error; err != nil {
		util.RespondInternalError(c, "failed to update report")
		return
	}

	h.audit.Record(c, auditlog.Entry{
		Action:     "report." + string(status),
		TargetType: "report",
		TargetID:   report.ID,
		Details: gin.H{
			"previous_status": previous,
			"action_taken":    req.ActionTaken,
		},
	})

	c.JSON(http.StatusOK, gin.H{"report": report})
}
