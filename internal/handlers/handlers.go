package handlers

import (
	"github.com/shareloop/backend/internal/analytics"
	"github.com/shareloop/backend/internal/auditlog"
	"github.com/shareloop/backend/internal/settings"
)

// Handlers contains all HTTP handlers for the admin API
type Handlers struct {
	analytics *analytics.Service
	settings  *settings.Service
	audit     *auditlog.Recorder
}

// NewHandlers creates a new handlers instance
func NewHandlers(analyticsService *analytics.Service, settingsService *settings.Service, audit *auditlog.Recorder) *Handlers {
	return &Handlers{
		analytics: analyticsService,
		settings:  settingsService,
		audit:     audit,
	}
}
