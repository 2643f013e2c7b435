// Package settings is the typed surface over the admin_settings key→JSON
// table. Handlers never touch the table directly; every write is validated
// here against the key's declared shape.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/shareloop/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Definition declares a known setting key: its default value, description,
// and the validation applied on writes.
type Definition struct {
	Default     string // JSON-encoded
	Description string
	Validate    func(raw json.RawMessage) error
}

// Known settings. Enforcement of these values happens in the serving layer;
// this backend stores, validates, and serves them.
var definitions = map[string]Definition{
	"site_name": {
		Default:     `"Shareloop"`,
		Description: "Display name of the platform",
		Validate:    nonEmptyString,
	},
	"registration_enabled": {
		Default:     `true`,
		Description: "Whether new members can sign up",
		Validate:    boolean,
	},
	"moderation_enabled": {
		Default:     `true`,
		Description: "Whether new items require review before listing",
		Validate:    boolean,
	},
	"max_items_per_user": {
		Default:     `50`,
		Description: "Maximum live listings per member",
		Validate:    positiveInt,
	},
	"max_image_size_mb": {
		Default:     `10`,
		Description: "Maximum upload size for item images, in megabytes",
		Validate:    positiveInt,
	},
	"maintenance_mode": {
		Default:     `false`,
		Description: "Whether the platform is closed for maintenance",
		Validate:    boolean,
	},
}

// Service reads and writes admin settings
type Service struct {
	db *gorm.DB
}

// NewService creates a settings service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Seed inserts defaults for every known key, leaving existing values alone.
// Safe to run on every startup.
func (s *Service) Seed(ctx context.Context) error {
	keys := make([]string, 0, len(definitions))
	for key := range definitions {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		def := definitions[key]
		row := models.AdminSetting{
			Key:         key,
			Value:       def.Default,
			Description: def.Description,
		}
		err := s.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoNothing: true,
			}).
			Create(&row).Error
		if err != nil {
			return fmt.Errorf("failed to seed setting %s: %w", key, err)
		}
	}
	return nil
}

// Get returns the JSON value for one known key
func (s *Service) Get(ctx context.Context, key string) (json.RawMessage, error) {
	if _, ok := definitions[key]; !ok {
		return nil, fmt.Errorf("unknown setting %q", key)
	}

	var row models.AdminSetting
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return json.RawMessage(definitions[key].Default), nil
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(row.Value), nil
}

// GetAll returns every known setting, falling back to defaults for keys that
// were never written.
func (s *Service) GetAll(ctx context.Context) (map[string]json.RawMessage, error) {
	var rows []models.AdminSetting
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]json.RawMessage, len(definitions))
	for key, def := range definitions {
		out[key] = json.RawMessage(def.Default)
	}
	for _, row := range rows {
		if _, ok := definitions[row.Key]; ok {
			out[row.Key] = json.RawMessage(row.Value)
		}
	}
	return out, nil
}

// Set validates and stores a value for a known key
func (s *Service) Set(ctx context.Context, key string, value json.RawMessage) error {
	def, ok := definitions[key]
	if !ok {
		return fmt.Errorf("unknown setting %q", key)
	}
	if err := def.Validate(value); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	row := models.AdminSetting{
		Key:         key,
		Value:       string(value),
		Description: def.Description,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
}

// Validators

func nonEmptyString(raw json.RawMessage) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return fmt.Errorf("expected a JSON string")
	}
	if s == "" {
		return fmt.Errorf("must not be empty")
	}
	return nil
}

func boolean(raw json.RawMessage) error {
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return fmt.Errorf("expected a JSON boolean")
	}
	return nil
}

func positiveInt(raw json.RawMessage) error {
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return fmt.Errorf("expected a JSON integer")
	}
	if n <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}
