package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminLog is an append-only audit record of a privileged action.
// Rows are written once and never updated or deleted.
type AdminLog struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	AdminID string `gorm:"not null;index" json:"admin_id"`
	Admin   User   `gorm:"foreignKey:AdminID" json:"admin,omitempty"`

	Action     string  `gorm:"not null;index" json:"action"` // "user.ban", "report.resolve", ...
	TargetType *string `json:"target_type"`
	TargetID   *string `gorm:"type:uuid;index" json:"target_id"`
	Details    *string `gorm:"type:text" json:"details"` // JSON payload, free-form

	// Request metadata when the action came through HTTP
	IPAddress string `json:"ip_address"`
	UserAgent string `gorm:"type:text" json:"user_agent"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// BeforeCreate assigns a UUID so the model works on both postgres and sqlite
func (l *AdminLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

// AdminSetting is a small key -> JSON value mapping for platform configuration.
// Enforcement of the values (registration toggle, item limits, ...) happens in
// the serving layer; this backend only stores and validates them.
type AdminSetting struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	Key         string    `gorm:"uniqueIndex;not null" json:"key"`
	Value       string    `gorm:"type:text;not null" json:"value"` // JSON-encoded
	Description string    `gorm:"type:text" json:"description"`
	UpdatedAt   time.Time `json:"updated_at"`
}
