package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"komfovent_gateway/internal/komfovent"
	"komfovent_gateway/internal/service"
)

func TestScheduleHandlers(t *testing.T) {
	sched := &mockSchedule{view: service.ScheduleView{
		CurrentProgram: 1,
		Schedules: []service.ProgramView{{
			Program: 0,
			Rows: []service.RowView{{
				Weekdays:    []string{"Mon", "Tue"},
				WeekdayMask: 3,
				Entries:     []service.EntryView{{Mode: "normal", Start: "08:00", Stop: "18:00"}},
			}},
		}},
	}}
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}, Schedule: sched})

	w := do(r, http.MethodGet, "/api/v1/device/schedule", "", "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("get status=%d body=%s", w.Code, w.Body.String())
	}
	var out service.ScheduleView
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.CurrentProgram != 1 || out.Schedules[0].Rows[0].Entries[0].Start != "08:00" {
		t.Fatalf("schedule: %+v", out)
	}

	body := `{"program":2,"row":1,"weekdays":96,"entries":[{"mode":"away","start":"00:00","stop":"06:30"}]}`
	w = do(r, http.MethodPost, "/api/v1/device/schedule", body, "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("set status=%d body=%s", w.Code, w.Body.String())
	}
	got := sched.lastSet
	if got.Program != 2 || got.Row != 1 || got.WeekdayMask != 96 || len(got.Entries) != 1 || got.Entries[0].Stop != "06:30" {
		t.Fatalf("service got %+v", got)
	}

	w = do(r, http.MethodPost, "/api/v1/device/schedule", `{"entries":[{"mode":"away"}]}`, "valid")
	if w.Code != http.StatusBadRequest || sched.setCalls != 1 {
		t.Fatalf("incomplete entry: status=%d calls=%d", w.Code, sched.setCalls)
	}

	sched.setErr = komfovent.ErrValidation
	if w := do(r, http.MethodPost, "/api/v1/device/schedule", `{"program":9}`, "valid"); w.Code != http.StatusBadRequest {
		t.Fatalf("validation: expected 400, got %d", w.Code)
	}

	sched.getErr = errors.Join(komfovent.ErrConnection, komfovent.ErrParse)
	if w := do(r, http.MethodGet, "/api/v1/device/schedule", "", "valid"); w.Code != http.StatusBadGateway {
		t.Fatalf("device error: expected 502, got %d", w.Code)
	}
}
