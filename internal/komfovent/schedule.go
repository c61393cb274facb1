package komfovent

import (
	"fmt"
	"strconv"
	"strings"
)

// ScheduleMode is the mode code stored in a schedule entry.
type ScheduleMode int

const (
	ScheduleAway      ScheduleMode = 1
	ScheduleNormal    ScheduleMode = 2
	ScheduleIntensive ScheduleMode = 3
	ScheduleBoost     ScheduleMode = 4
)

var scheduleModeNames = map[ScheduleMode]string{
	ScheduleAway:      "away",
	ScheduleNormal:    "normal",
	ScheduleIntensive: "intensive",
	ScheduleBoost:     "boost",
}

func (m ScheduleMode) String() string {
	if name, ok := scheduleModeNames[m]; ok {
		return name
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

// Valid reports whether m is one of the four schedulable modes.
func (m ScheduleMode) Valid() bool {
	_, ok := scheduleModeNames[m]
	return ok
}

// ParseScheduleMode accepts away, normal, intensive or boost in any case.
func ParseScheduleMode(name string) (ScheduleMode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for m, n := range scheduleModeNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown schedule mode %q", ErrValidation, name)
}

// Untouched schedule slots hold this mode with zero start and stop.
const sentinelMode = ScheduleAway

// ScheduleEntry is one time range of a schedule row.
type ScheduleEntry struct {
	Mode        ScheduleMode
	StartHour   int
	StartMinute int
	StopHour    int
	StopMinute  int
}

func (e ScheduleEntry) StartMinutes() int { return e.StartHour*60 + e.StartMinute }
func (e ScheduleEntry) StopMinutes() int  { return e.StopHour*60 + e.StopMinute }

// Start formats the start time as HH:MM.
func (e ScheduleEntry) Start() string { return formatClock(e.StartHour, e.StartMinute) }

// Stop formats the stop time as HH:MM.
func (e ScheduleEntry) Stop() string { return formatClock(e.StopHour, e.StopMinute) }

// NewScheduleEntry validates a mode name and two "HH:MM" strings. Start
// hours run 0..23, stop hours 0..24.
func NewScheduleEntry(mode, start, stop string) (ScheduleEntry, error) {
	m, err := ParseScheduleMode(mode)
	if err != nil {
		return ScheduleEntry{}, err
	}
	sh, sm, err := ParseTimeOfDay(start, 23)
	if err != nil {
		return ScheduleEntry{}, fmt.Errorf("start: %w", err)
	}
	eh, em, err := ParseTimeOfDay(stop, 24)
	if err != nil {
		return ScheduleEntry{}, fmt.Errorf("stop: %w", err)
	}
	return ScheduleEntry{Mode: m, StartHour: sh, StartMinute: sm, StopHour: eh, StopMinute: em}, nil
}

// ParseTimeOfDay parses "HH:MM" with hour in 0..maxHour and minute in 0..59.
func ParseTimeOfDay(s string, maxHour int) (hour, minute int, err error) {
	hs, ms, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || strings.Contains(ms, ":") {
		return 0, 0, fmt.Errorf("%w: invalid time format %q, use HH:MM", ErrValidation, s)
	}
	hour, herr := strconv.Atoi(hs)
	minute, merr := strconv.Atoi(ms)
	if herr != nil || merr != nil {
		return 0, 0, fmt.Errorf("%w: invalid time format %q, use HH:MM", ErrValidation, s)
	}
	if hour < 0 || hour > maxHour || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: time %q out of range", ErrValidation, s)
	}
	return hour, minute, nil
}

var weekdayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// ScheduleRow is a set of weekdays sharing up to five entries.
type ScheduleRow struct {
	WeekdayMask int
	Entries     []ScheduleEntry
}

// Weekdays lists the days selected by the mask, Monday first.
func (r ScheduleRow) Weekdays() []string {
	days := make([]string, 0, len(weekdayNames))
	for i, d := range weekdayNames {
		if r.WeekdayMask&(1<<i) != 0 {
			days = append(days, d)
		}
	}
	return days
}

// Schedule is one weekly program.
type Schedule struct {
	Program int
	Rows    []ScheduleRow
}

// RawSchedule holds the schedule registers as read from the panel.
type RawSchedule struct {
	CurrentProgram int
	WeekdayMask    []int
	Mode           []int
	Start          []int
	Stop           []int
}

// ParseScheduleConfig decodes raw registers with the default layout.
func ParseScheduleConfig(raw RawSchedule) ([]Schedule, error) {
	return DefaultProfile().Schedule.Parse(raw)
}

// BuildScheduleCommands encodes one row with the default layout.
func BuildScheduleCommands(program, row, weekdayMask int, entries []ScheduleEntry) (map[string]int, error) {
	return DefaultProfile().Schedule.Build(program, row, weekdayMask, entries)
}

// Parse decodes every program. Rows with an empty weekday mask and
// sentinel entries are left out.
func (l ScheduleLayout) Parse(raw RawSchedule) ([]Schedule, error) {
	if len(raw.WeekdayMask) < l.TotalRows() {
		return nil, fmt.Errorf("%w: %d weekday masks, want %d", ErrParse, len(raw.WeekdayMask), l.TotalRows())
	}
	for name, regs := range map[string][]int{"mode": raw.Mode, "start": raw.Start, "stop": raw.Stop} {
		if len(regs) < l.TotalEntries() {
			return nil, fmt.Errorf("%w: %d %s registers, want %d", ErrParse, len(regs), name, l.TotalEntries())
		}
	}

	schedules := make([]Schedule, 0, l.Programs)
	for prog := 0; prog < l.Programs; prog++ {
		sched := Schedule{Program: prog, Rows: []ScheduleRow{}}
		for row := 0; row < l.Rows; row++ {
			globalRow := prog*l.Rows + row
			mask := raw.WeekdayMask[globalRow]
			if mask == 0 {
				continue
			}
			r := ScheduleRow{WeekdayMask: mask, Entries: []ScheduleEntry{}}
			for entry := 0; entry < l.Entries; entry++ {
				g := globalRow*l.Entries + entry
				mode, start, stop := ScheduleMode(raw.Mode[g]), raw.Start[g], raw.Stop[g]
				if mode == sentinelMode && start == 0 && stop == 0 {
					continue
				}
				if !mode.Valid() {
					return nil, fmt.Errorf("%w: program %d row %d entry %d has mode code %d", ErrParse, prog, row, entry, mode)
				}
				r.Entries = append(r.Entries, ScheduleEntry{
					Mode:        mode,
					StartHour:   start / 60,
					StartMinute: start % 60,
					StopHour:    stop / 60,
					StopMinute:  stop % 60,
				})
			}
			sched.Rows = append(sched.Rows, r)
		}
		schedules = append(schedules, sched)
	}
	return schedules, nil
}

// Build returns the register writes for one row: the weekday mask, up to
// Entries entries (extras dropped) and the sentinel in every unused slot.
func (l ScheduleLayout) Build(program, row, weekdayMask int, entries []ScheduleEntry) (map[string]int, error) {
	switch {
	case program < 0 || program >= l.Programs:
		return nil, fmt.Errorf("%w: program %d out of range 0..%d", ErrValidation, program, l.Programs-1)
	case row < 0 || row >= l.Rows:
		return nil, fmt.Errorf("%w: row %d out of range 0..%d", ErrValidation, row, l.Rows-1)
	case weekdayMask < 0 || weekdayMask > 127:
		return nil, fmt.Errorf("%w: weekday mask %d out of range 0..127", ErrValidation, weekdayMask)
	}
	if len(entries) > l.Entries {
		entries = entries[:l.Entries]
	}

	globalRow := program*l.Rows + row
	cmds := make(map[string]int, 1+3*l.Entries)
	cmds[strconv.Itoa(l.WeekdayMaskBase+globalRow)] = weekdayMask
	for i := 0; i < l.Entries; i++ {
		g := globalRow*l.Entries + i
		mode, start, stop := int(sentinelMode), 0, 0
		if i < len(entries) {
			e := entries[i]
			mode, start, stop = int(e.Mode), e.StartMinutes(), e.StopMinutes()
		}
		cmds[strconv.Itoa(l.ModeBase+g)] = mode
		cmds[strconv.Itoa(l.StartBase+g)] = start
		cmds[strconv.Itoa(l.StopBase+g)] = stop
	}
	return cmds, nil
}

func formatClock(h, m int) string {
	return fmt.Sprintf("%02d:%02d", h, m)
}
