package service

import "time"

// LogFilter narrows a journal query.
type LogFilter struct {
	From  time.Time // inclusive; zero means no lower bound
	To    time.Time // inclusive; zero means no upper bound
	Type  string    // "", MODE_CHANGED, FILTER_WARNING, CONNECTION_LOST, ...
	Limit int       // <= 0 or above MaxLogLimit selects MaxLogLimit
}

// ScheduleEntryInput is one slot of a schedule write, times as "HH:MM".
type ScheduleEntryInput struct {
	Mode  string `json:"mode" binding:"required" example:"normal"`
	Start string `json:"start" binding:"required" example:"08:00"`
	Stop  string `json:"stop" binding:"required" example:"18:00"`
}

// ScheduleUpdate replaces one row of one program.
type ScheduleUpdate struct {
	Program     int                  `json:"program" example:"0"`
	Row         int                  `json:"row" example:"0"`
	WeekdayMask int                  `json:"weekdays" example:"31"` // bit 0 = Monday
	Entries     []ScheduleEntryInput `json:"entries" binding:"dive"`
}

// SettingValue carries a number for number settings or a flag for switches.
type SettingValue struct {
	Value *float64 `json:"value,omitempty" example:"21.5"`
	On    *bool    `json:"on,omitempty"`
}
