package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"komfovent_gateway/internal/komfovent"
	"komfovent_gateway/internal/service"

	"github.com/gin-gonic/gin"
)

const errBadLimit = "invalid 'limit'; use a positive integer"

// queryTimeLayouts are tried in order; the last one is date-only.
var queryTimeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// logsQuery is the query string of GET /api/v1/logs.
type logsQuery struct {
	From  string `form:"from"`
	To    string `form:"to"`
	Type  string `form:"type"`
	Limit int    `form:"limit" binding:"omitempty,min=1"`
}

// filter parses the bounds. A date-only "to" covers that whole day.
func (q logsQuery) filter() (service.LogFilter, error) {
	f := service.LogFilter{Type: q.Type, Limit: q.Limit}
	if q.From != "" {
		from, _, err := parseQueryTime(q.From)
		if err != nil {
			return f, fmt.Errorf("%w: from: %w", komfovent.ErrValidation, err)
		}
		f.From = from
	}
	if q.To != "" {
		to, dateOnly, err := parseQueryTime(q.To)
		if err != nil {
			return f, fmt.Errorf("%w: to: %w", komfovent.ErrValidation, err)
		}
		if dateOnly {
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
		f.To = to
	}
	return f, nil
}

// parseQueryTime also reports whether s had no time of day.
func parseQueryTime(s string) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	for i, layout := range queryTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), i == len(queryTimeLayouts)-1, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("%q: use RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'", s)
}

// @Summary      List journal events
// @Description  Device events newest first. Times are RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD' (UTC); a date-only 'to' includes that whole day.
// @Tags         logs
// @Produce      json
// @Param        from  query   string  false  "Start of range"  example(2026-02-01)
// @Param        to    query   string  false  "End of range"  example(2026-02-28)
// @Param        type  query   string  false  "Event type"  Enums(MODE_CHANGED,FILTER_WARNING,CONNECTION_LOST,CONNECTION_RESTORED,AUTH_FAILED,COMMAND)
// @Param        limit query   int     false  "Maximum number of events, at most 1000"  example(100)
// @Success      200   {object}  map[string]interface{}  "count, events"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/logs [get]
// @Security     BearerAuth
func (h *Handler) getLogs(c *gin.Context) {
	var q logsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		if h.log != nil {
			h.log.Infow("logs_bad_query", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errBadLimit})
		return
	}
	f, err := q.filter()
	if err != nil {
		h.logAndJSONError(c, "logs_bad_query", err)
		return
	}
	events, err := h.services.EventLog.List(c.Request.Context(), f)
	if err != nil {
		h.logAndJSONError(c, "logs_list_failed", err, "type", f.Type, "limit", f.Limit)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}
