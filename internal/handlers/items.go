package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shareloop/backend/internal/auditlog"
	"github.com/shareloop/backend/internal/database"
	"github.com/shareloop/backend/internal/models"
	"github.com/shareloop/backend/internal/util"
)

// ListItems returns a paginated item list for moderation.
// Filters: ?category= and ?available=true|false.
func (h *Handlers) ListItems(c *gin.Context) {
	page, perPage := util.ParsePagination(c.Query("page"), c.Query("per_page"), 100)

	query := database.DB.Model(&models.Item{}).Preload("Owner")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if available := c.Query("available"); available != "" {
		wantAvailable, err := strconv.ParseBool(available)
		if err != nil {
			util.RespondBadRequest(c, "available must be true or false")
			return
		}
		query = query.Where("is_available = ?", wantAvailable)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		util.RespondInternalError(c, "failed to count items")
		return
	}

	var items []models.Item
	err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&items).Error
	if err != nil {
		util.RespondInternalError(c, "failed to list items")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":    items,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}

// SetItemAvailability marks an item available or unavailable.
// Delisting an item is the moderation action for problem listings; the item
// stays visible to its owner.
func (h *Handlers) SetItemAvailability(c *gin.Context) {
	itemID := c.Param("id")

	var req struct {
		IsAvailable *bool `json:"is_available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "is_available is required")
		return
	}

	var item models.Item
	if err := database.DB.Where("id = ?", itemID).First(&item).Error; err != nil {
		util.RespondNotFound(c, "item")
		return
	}

	item.IsAvailable = *req.IsAvailable
	if err := database.DB.Save(&item).Error; err != nil {
		util.RespondInternalError(c, "failed to update item")
		return
	}

	action := "item.delist"
	if item.IsAvailable {
		action = "item.relist"
	}
	h.audit.Record(c, auditlog.Entry{
		Action:     action,
		TargetType: "item",
		TargetID:   item.ID,
	})

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DeleteItem soft-deletes an item. The row survives for the audit trail and
// the owner's history; it just disappears from every listing and counter.
func (h *Handlers) DeleteItem(c *gin.Context) {
	itemID := c.Param("id")

	var item models.Item
	if err := database.DB.Where("id = ?", itemID).First(&item).Error; err != nil {
		util.RespondNotFound(c, "item")
		return
	}

	if err := database.DB.Delete(&item).Error; err != nil {
		util.RespondInternalError(c, "failed to delete item")
		return
	}

	h.audit.Record(c, auditlog.Entry{
		Action:     "item.delete",
		TargetType: "item",
		TargetID:   item.ID,
		Details:    gin.H{"title": item.Title, "owner_id": item.OwnerID},
	})

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
