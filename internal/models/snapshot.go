package models

import (
	"time"

	"komfovent_gateway/internal/komfovent"
)

// Snapshot is the last state read from the panel. While polls fail the
// reading is kept with Available false, so ReadAt tells how old it is.
type Snapshot struct {
	State  komfovent.DeviceState `json:"state"`
	Mode   string                `json:"mode,omitempty"` // canonical, empty when the panel reported an unknown string
	ReadAt time.Time             `json:"read_at"`

	Available   bool       `json:"available"`
	LastError   string     `json:"last_error,omitempty"`
	FailedSince *time.Time `json:"failed_since,omitempty"`
}
