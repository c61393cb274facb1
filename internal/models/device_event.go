package models

import "time"

// Journal event types.
const (
	EventModeChanged        = "MODE_CHANGED"
	EventFilterWarning      = "FILTER_WARNING"
	EventConnectionLost     = "CONNECTION_LOST"
	EventConnectionRestored = "CONNECTION_RESTORED"
	EventAuthFailed         = "AUTH_FAILED"
	EventCommand            = "COMMAND"
)

// EventTypes lists every journal event type.
var EventTypes = []string{
	EventModeChanged,
	EventFilterWarning,
	EventConnectionLost,
	EventConnectionRestored,
	EventAuthFailed,
	EventCommand,
}

// IsEventType reports whether t is one of EventTypes.
func IsEventType(t string) bool {
	for _, known := range EventTypes {
		if t == known {
			return true
		}
	}
	return false
}

// DeviceEvent is a single journal entry.
type DeviceEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
