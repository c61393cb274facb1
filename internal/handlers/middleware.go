package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID        = "userId"
	tokenQueryParam  = "access_token"
	errMissingHeader = "missing Authorization header"
	errHeaderFormat  = "invalid Authorization header format"
	errBadToken      = "invalid or expired token"
)

// userIdMiddleware requires a Bearer JWT. Browsers cannot set headers on a
// WebSocket handshake, so /ws may pass the token as ?access_token= instead.
func (h *Handler) userIdMiddleware(c *gin.Context) {
	token, msg := bearerToken(c)
	if msg != "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
		return
	}

	userId, err := h.services.ParseToken(token)
	if err != nil {
		if h.log != nil {
			h.log.Debugw("auth_token_rejected", "path", c.FullPath(), "err", err)
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errBadToken})
		return
	}

	c.Set(ctxUserID, userId)
	c.Next()
}

func bearerToken(c *gin.Context) (token, errMsg string) {
	header := c.GetHeader("Authorization")
	if header == "" {
		if q := c.Query(tokenQueryParam); q != "" && c.IsWebsocket() {
			return q, ""
		}
		return "", errMissingHeader
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", errHeaderFormat
	}
	return parts[1], ""
}
