package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Discover panels
// @Description  Sweeps the local /24 subnet for C6 web panels.
// @Tags         discovery
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, devices"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/discovery [get]
// @Security     BearerAuth
func (h *Handler) discover(c *gin.Context) {
	found, err := h.services.Discovery.Discover(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, "discovery_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(found),
		"devices": found,
	})
}
