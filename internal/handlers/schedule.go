package handlers

import (
	"net/http"

	"komfovent_gateway/internal/service"

	"github.com/gin-gonic/gin"
)

// @Summary      Get weekly schedule
// @Tags         schedule
// @Produce      json
// @Success      200  {object}  service.ScheduleView
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/device/schedule [get]
// @Security     BearerAuth
func (h *Handler) getSchedule(c *gin.Context) {
	v, err := h.services.Schedule.GetSchedule(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, "schedule_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// @Summary      Replace one schedule row
// @Description  weekdays is a bit mask, bit 0 = Monday. Up to five entries; unused slots are cleared.
// @Tags         schedule
// @Accept       json
// @Produce      json
// @Param        body  body   service.ScheduleUpdate  true  "Schedule row"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/v1/device/schedule [post]
// @Security     BearerAuth
func (h *Handler) setSchedule(c *gin.Context) {
	var req service.ScheduleUpdate
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	if err := h.services.Schedule.SetSchedule(c.Request.Context(), req); err != nil {
		h.logAndJSONError(c, "schedule_set_failed", err, "program", req.Program, "row", req.Row)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}
