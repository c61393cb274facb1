package service

import (
	"context"
	"fmt"

	"komfovent_gateway/internal/komfovent"
	"komfovent_gateway/internal/logger"
	"komfovent_gateway/internal/models"
	"komfovent_gateway/internal/repository"
)

type EntryView struct {
	Mode  string `json:"mode" example:"normal"`
	Start string `json:"start" example:"08:00"`
	Stop  string `json:"stop" example:"18:00"`
}

type RowView struct {
	Weekdays    []string    `json:"weekdays"`
	WeekdayMask int         `json:"weekday_mask" example:"31"`
	Entries     []EntryView `json:"entries"`
}

type ProgramView struct {
	Program int       `json:"program"`
	Rows    []RowView `json:"rows"`
}

// ScheduleView is the decoded schedule of every program.
type ScheduleView struct {
	CurrentProgram int           `json:"current_program"`
	Schedules      []ProgramView `json:"schedules"`
}

type ScheduleService struct {
	device Device
	events repository.EventRepo
	log    *logger.Logger
}

func NewScheduleService(device Device, events repository.EventRepo, log *logger.Logger) *ScheduleService {
	return &ScheduleService{device: device, events: events, log: log}
}

func (s *ScheduleService) GetSchedule(ctx context.Context) (ScheduleView, error) {
	raw, err := s.device.GetSchedule(ctx)
	if err != nil {
		return ScheduleView{}, fmt.Errorf("read schedule: %w", err)
	}
	programs, err := s.device.Profile().Schedule.Parse(raw)
	if err != nil {
		return ScheduleView{}, err
	}
	return newScheduleView(raw.CurrentProgram, programs), nil
}

// SetSchedule validates every entry before anything is sent; the panel gets
// one batched write for the whole row.
func (s *ScheduleService) SetSchedule(ctx context.Context, u ScheduleUpdate) error {
	entries := make([]komfovent.ScheduleEntry, 0, len(u.Entries))
	for i, in := range u.Entries {
		e, err := komfovent.NewScheduleEntry(in.Mode, in.Start, in.Stop)
		if err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		entries = append(entries, e)
	}
	cmds, err := s.device.Profile().Schedule.Build(u.Program, u.Row, u.WeekdayMask, entries)
	if err != nil {
		return err
	}
	if err := s.device.SetSchedule(ctx, cmds); err != nil {
		return fmt.Errorf("write schedule: %w", err)
	}
	journal(ctx, s.events, s.log, models.EventCommand,
		fmt.Sprintf("schedule program %d row %d updated", u.Program, u.Row),
		map[string]any{"action": "set_schedule", "program": u.Program, "row": u.Row, "weekdays": u.WeekdayMask, "entries": len(entries)})
	return nil
}

func newScheduleView(current int, programs []komfovent.Schedule) ScheduleView {
	v := ScheduleView{CurrentProgram: current, Schedules: make([]ProgramView, 0, len(programs))}
	for _, p := range programs {
		pv := ProgramView{Program: p.Program, Rows: make([]RowView, 0, len(p.Rows))}
		for _, r := range p.Rows {
			rv := RowView{Weekdays: r.Weekdays(), WeekdayMask: r.WeekdayMask, Entries: make([]EntryView, 0, len(r.Entries))}
			for _, e := range r.Entries {
				rv.Entries = append(rv.Entries, EntryView{Mode: e.Mode.String(), Start: e.Start(), Stop: e.Stop()})
			}
			pv.Rows = append(pv.Rows, rv)
		}
		v.Schedules = append(v.Schedules, pv)
	}
	return v
}
