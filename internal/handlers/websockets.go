package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 5 * time.Second
	minInterval      = 100 * time.Millisecond
	maxInterval      = 60 * time.Second
	maxIntervalMilli = 60_000
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// The stream is token protected, so any origin may connect.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsConnect streams the snapshot every interval. Repeated frames are
// skipped until the poller stores a newer read or availability changes.
func (h *Handler) wsConnect(c *gin.Context) {
	interval := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader goroutine to handle control frames and detect disconnects.
	done := make(chan struct{})
	go h.startReader(conn, done)

	// Prepare periodic writers: state updates and pings.
	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	var last streamMark

	// Send initial state immediately.
	if fetchErr, writeErr := h.sendState(c.Request.Context(), conn, &last); fetchErr != nil || writeErr != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "fetch_err", fetchErr, "write_err", writeErr)
		}
		return
	}

	// Writer/select loop.
	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case <-ticker.C:
			fetchErr, writeErr := h.sendState(c.Request.Context(), conn, &last)
			if fetchErr != nil && writeErr == nil {
				_, msg := statusFor(fetchErr)
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				writeErr = conn.WriteJSON(wsEnvelope{Type: "error", Error: msg})
			}
			if writeErr != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", writeErr)
				}
				return
			}
		}
	}
}

// parseInterval reads ?interval=2s or ?interval_ms=2000 within 100ms..60s.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	interval := defaultInterval

	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d >= minInterval && d <= maxInterval {
			return d
		}
	}

	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v >= int(minInterval/time.Millisecond) && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}

	return interval
}

// Helper: startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}

// streamMark identifies the last snapshot written to a stream.
type streamMark struct {
	sent      bool
	readAt    time.Time
	available bool
}

// sendState writes the snapshot unless *last already describes it.
func (h *Handler) sendState(ctx context.Context, conn *websocket.Conn, last *streamMark) (fetchErr, writeErr error) {
	st, err := h.services.Monitoring.GetState(ctx)
	if err != nil {
		if h.log != nil {
			h.log.Warnw("ws_get_state_failed", "err", err)
		}
		return err, nil
	}
	if last.sent && st.ReadAt.Equal(last.readAt) && st.Available == last.available {
		return nil, nil
	}
	*last = streamMark{sent: true, readAt: st.ReadAt, available: st.Available}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return nil, conn.WriteJSON(wsEnvelope{Type: "state", Data: newStateResponse(st)})
}
