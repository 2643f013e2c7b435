package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Item represents a physical object a member has listed for sharing
type Item struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	OwnerID string `gorm:"not null;index" json:"owner_id"`
	Owner   User   `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"not null;index" json:"category"`
	ImageURL    string `json:"image_url"`
	Condition   string `json:"condition"` // "new", "good", "worn"

	// Availability drives the category distribution and what browsers see
	IsAvailable bool `gorm:"default:true;index" json:"is_available"`

	// GORM fields
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns a UUID so the model works on both postgres and sqlite
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}

// ItemView records a member opening an item's detail page.
// Rows are write-once and feed the view totals and active-user counters.
type ItemView struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string `gorm:"not null;index" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ItemID string `gorm:"not null;index" json:"item_id"`
	Item   Item   `gorm:"foreignKey:ItemID" json:"item,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// BeforeCreate assigns a UUID so the model works on both postgres and sqlite
func (v *ItemView) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}

// Favorite marks an item a member wants to keep an eye on
type Favorite struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string `gorm:"not null;index" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ItemID string `gorm:"not null;index" json:"item_id"`
	Item   Item   `gorm:"foreignKey:ItemID" json:"item,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate assigns a UUID so the model works on both postgres and sqlite
func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}
