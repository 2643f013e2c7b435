// Package auditlog appends immutable records of privileged actions.
// A failed write is logged and counted but never propagated: losing one audit
// row must not block the moderation action that triggered it.
package auditlog

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shareloop/backend/internal/logger"
	"github.com/shareloop/backend/internal/metrics"
	"github.com/shareloop/backend/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Entry describes one admin action to record
type Entry struct {
	Action     string // "user.ban", "report.resolve", ...
	TargetType string // "user", "item", "report", ...
	TargetID   string // validated; malformed ids are stored as null
	Details    any    // JSON-serializable payload, optional
}

// Recorder appends admin actions to the audit trail
type Recorder struct {
	db *gorm.DB
}

// NewRecorder creates an audit log recorder
func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// Record appends one audit row for the acting admin on this request.
// The write is single-attempt (the insert has no deduplication key, so a
// retry could double-log) and errors are swallowed after logging; callers
// treat their primary action as succeeded either way.
func (r *Recorder) Record(c *gin.Context, entry Entry) {
	adminID, _ := c.Get("user_id")
	adminIDStr, _ := adminID.(string)
	if adminIDStr == "" {
		// No identity to attribute; record nothing rather than fabricate.
		logger.Log.Warn("audit log entry dropped: no admin identity in context",
			zap.String("action", entry.Action),
		)
		return
	}

	row := models.AdminLog{
		AdminID:   adminIDStr,
		Action:    entry.Action,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}

	if entry.TargetType != "" {
		row.TargetType = &entry.TargetType
	}
	// Append-only logs favor completeness over strict validation: a
	// malformed target id becomes null instead of rejecting the row.
	if _, err := uuid.Parse(entry.TargetID); err == nil {
		row.TargetID = &entry.TargetID
	}
	if entry.Details != nil {
		if raw, err := json.Marshal(entry.Details); err == nil {
			details := string(raw)
			row.Details = &details
		}
	}

	err := r.db.WithContext(c.Request.Context()).Create(&row).Error
	metrics.RecordAuditLogWrite(err)
	if err != nil {
		logger.Log.Error("audit log write failed",
			zap.String("action", entry.Action),
			logger.WithAdminID(adminIDStr),
			zap.Error(err),
		)
	}
}
