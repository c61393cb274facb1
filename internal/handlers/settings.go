package handlers

import (
	"net/http"

	"komfovent_gateway/internal/service"

	"github.com/gin-gonic/gin"
)

// @Summary      List settings
// @Description  Per-mode and device registers that can be written.
// @Tags         settings
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, settings"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/device/settings [get]
// @Security     BearerAuth
func (h *Handler) listSettings(c *gin.Context) {
	settings := h.services.Settings.ListSettings()
	c.JSON(http.StatusOK, gin.H{
		"count":    len(settings),
		"settings": settings,
	})
}

// @Summary      Update a setting
// @Description  Number settings take {"value": n}, switches take {"on": true|false}.
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        key   path   string                true  "Setting key"  example(mode_normal_temp)
// @Param        body  body   service.SettingValue  true  "New value"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/v1/device/settings/{key} [put]
// @Security     BearerAuth
func (h *Handler) updateSetting(c *gin.Context) {
	key := c.Param("key")
	var req service.SettingValue
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	if err := h.services.Settings.UpdateSetting(c.Request.Context(), key, req); err != nil {
		h.logAndJSONError(c, "setting_update_failed", err, "key", key)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK, "key": key})
}
