package handlers

import (
	"net/http"

	_ "komfovent_gateway/docs"
	"komfovent_gateway/internal/logger"
	"komfovent_gateway/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	metrics  http.Handler
}

// NewHandler constructs a new HTTP handler. metrics may be nil, in which
// case /metrics is not served.
func NewHandler(services *service.Service, log *logger.Logger, metrics http.Handler) *Handler {
	return &Handler{services: services, log: log, metrics: metrics}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)
	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(h.metrics))
	}

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	router.GET("/ws", h.userIdMiddleware, h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerDeviceRoutes(api)
		api.GET("/discovery", h.discover)
		api.GET("/logs", h.getLogs)
	}
}

func (h *Handler) registerDeviceRoutes(api *gin.RouterGroup) {
	device := api.Group("/device")
	{
		device.GET("/state", h.getState)
		device.GET("/diagnostics", h.getDiagnostics)
		// Body example: {"mode":"boost"}
		device.POST("/mode", h.setMode)
		// Body example: {"temperature":21.5}
		device.POST("/temperature", h.setTemperature)
		device.GET("/schedule", h.getSchedule)
		device.POST("/schedule", h.setSchedule)
		device.GET("/settings", h.listSettings)
		device.PUT("/settings/:key", h.updateSetting)
	}
}
