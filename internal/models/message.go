package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a direct message between two members about an item.
// Real-time delivery lives outside this backend; the admin console only
// counts messages for the dashboard.
type Message struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	SenderID    string `gorm:"not null;index" json:"sender_id"`
	Sender      User   `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	RecipientID string `gorm:"not null;index" json:"recipient_id"`
	Recipient   User   `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`

	ItemID *string `gorm:"index" json:"item_id"`
	Body   string  `gorm:"type:text;not null" json:"body"`
	IsRead bool    `gorm:"default:false" json:"is_read"`

	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate assigns a UUID so the model works on both postgres and sqlite
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
