package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shareloop/backend/internal/auditlog"
	"github.com/shareloop/backend/internal/util"
)

// GetSettings returns every platform setting with defaults filled in
func (h *Handlers) GetSettings(c *gin.Context) {
	all, err := h.settings.GetAll(c.Request.Context())
	if err != nil {
		util.RespondInternalError(c, "failed to load settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": all})
}

// UpdateSetting validates and stores one setting value.
// The body is the raw JSON value for the key, e.g. `false` or `"Shareloop"`.
func (h *Handlers) UpdateSetting(c *gin.Context) {
	key := c.Param("key")

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 4096))
	if err != nil || len(body) == 0 {
		util.RespondBadRequest(c, "request body must be a JSON value")
		return
	}
	if !json.Valid(body) {
		util.RespondBadRequest(c, "request body must be valid JSON")
		return
	}

	if err := h.settings.Set(c.Request.Context(), key, json.RawMessage(body)); err != nil {
		util.RespondValidationError(c, key, err.Error())
		return
	}

	h.audit.Record(c, auditlog.Entry{
		Action:     "setting.update",
		TargetType: "setting",
		Details:    gin.H{"key": key, "value": json.RawMessage(body)},
	})

	c.JSON(http.StatusOK, gin.H{"key": key, "value": json.RawMessage(body)})
}
