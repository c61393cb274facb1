package handlers

import (
	"errors"
	"net/http"

	"komfovent_gateway/internal/komfovent"
	"komfovent_gateway/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errDeviceAuth        = "device rejected credentials"
	errDeviceUnreachable = "device unreachable"
	errInternal          = "internal error"
	errInvalidBodyPref   = "invalid body: "
)

// statusFor maps service and device errors to an HTTP status and a
// client-facing message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, komfovent.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrSettingNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, komfovent.ErrAuth):
		return http.StatusBadGateway, errDeviceAuth
	case errors.Is(err, komfovent.ErrConnection):
		return http.StatusBadGateway, errDeviceUnreachable
	default:
		return http.StatusInternalServerError, errInternal
	}
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	code, msg := statusFor(err)
	if h.log != nil {
		fields := append([]interface{}{"err", err, "status", code}, kv...)
		if code >= http.StatusInternalServerError {
			h.log.Errorw(logKey, fields...)
		} else {
			h.log.Infow(logKey, fields...)
		}
	}
	c.JSON(code, gin.H{"error": msg})
}

// bindJSONOrBadRequest binds the body into dst and writes a 400 on failure.
// Returns false if the request was already answered.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return false
	}
	return true
}
