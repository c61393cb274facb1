package handlers

import (
	"net/http"

	"komfovent_gateway/internal/models"

	"github.com/gin-gonic/gin"
)

const statusOK = "ok"

// StateResponse is the latest snapshot plus the booleans derived from it.
type StateResponse struct {
	models.Snapshot
	IsOn          bool `json:"is_on"`
	EcoMode       bool `json:"eco_mode"`
	AutoMode      bool `json:"auto_mode"`
	HeatingActive bool `json:"heating_active"`
	FilterDirty   bool `json:"filter_dirty"`
}

func newStateResponse(s models.Snapshot) StateResponse {
	dirty, _ := s.State.FilterDirty()
	return StateResponse{
		Snapshot:      s,
		IsOn:          s.State.IsOn(),
		EcoMode:       s.State.EcoMode(),
		AutoMode:      s.State.AutoMode(),
		HeatingActive: s.State.HeatingActive(),
		FilterDirty:   dirty,
	}
}

// SetModeRequest selects one of the four operating modes.
type SetModeRequest struct {
	Mode string `json:"mode" binding:"required" example:"normal" enums:"away,normal,intensive,boost"`
}

// SetTemperatureRequest sets the supply air setpoint in °C.
type SetTemperatureRequest struct {
	Temperature *float64 `json:"temperature" binding:"required" example:"21.5"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Get device state
// @Description  Latest polled snapshot. Before the first poll the panel is read once. While polls fail the last reading is returned with available=false.
// @Tags         device
// @Produce      json
// @Success      200  {object}  StateResponse
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/device/state [get]
// @Security     BearerAuth
func (h *Handler) getState(c *gin.Context) {
	st, err := h.services.Monitoring.GetState(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, "device_get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, newStateResponse(st))
}

// @Summary      Get diagnostics
// @Tags         device
// @Produce      json
// @Success      200  {object}  service.Diagnostics
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/device/diagnostics [get]
// @Security     BearerAuth
func (h *Handler) getDiagnostics(c *gin.Context) {
	d, err := h.services.Monitoring.Diagnostics(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, "device_diagnostics_failed", err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// @Summary      Set operating mode
// @Tags         device
// @Accept       json
// @Produce      json
// @Param        body  body   SetModeRequest  true  "Mode payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/v1/device/mode [post]
// @Security     BearerAuth
func (h *Handler) setMode(c *gin.Context) {
	var req SetModeRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	if err := h.services.DeviceControl.SetMode(c.Request.Context(), req.Mode); err != nil {
		h.logAndJSONError(c, "device_set_mode_failed", err, "mode", req.Mode)
		return
	}
	h.respondWithStatusAndState(c, gin.H{"mode": req.Mode})
}

// @Summary      Set supply temperature
// @Description  Accepts 10.0 to 30.0 °C.
// @Tags         device
// @Accept       json
// @Produce      json
// @Param        body  body   SetTemperatureRequest  true  "Temperature payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/v1/device/temperature [post]
// @Security     BearerAuth
func (h *Handler) setTemperature(c *gin.Context) {
	var req SetTemperatureRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	if err := h.services.DeviceControl.SetTemperature(c.Request.Context(), *req.Temperature); err != nil {
		h.logAndJSONError(c, "device_set_temperature_failed", err, "temperature", *req.Temperature)
		return
	}
	h.respondWithStatusAndState(c, gin.H{"temperature": *req.Temperature})
}

// respondWithStatusAndState includes the current state if it can be loaded.
func (h *Handler) respondWithStatusAndState(c *gin.Context, extra gin.H) {
	resp := gin.H{"status": statusOK}
	for k, v := range extra {
		resp[k] = v
	}
	if st, err := h.services.Monitoring.GetState(c.Request.Context()); err == nil {
		resp["state"] = newStateResponse(st)
	}
	c.JSON(http.StatusOK, resp)
}
