package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"komfovent_gateway/internal/komfovent"
	"komfovent_gateway/internal/models"
)

// fakeDevice is an in-memory panel with call counters.
type fakeDevice struct {
	mu sync.Mutex

	state    komfovent.DeviceState
	stateErr error
	raw      komfovent.RawSchedule
	rawErr   error
	writeErr error

	getStateCalls    int
	setModeCalls     int
	setTempCalls     int
	setRegisterCalls int
	setScheduleCalls int

	lastMode     string
	lastTemp     float64
	lastRegister int
	lastValue    string
	lastSchedule map[string]int
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{state: komfovent.DeviceState{Mode: "NORMALNY"}}
}

func (f *fakeDevice) Authenticate(ctx context.Context) (bool, error) { return true, nil }

func (f *fakeDevice) GetState(ctx context.Context) (komfovent.DeviceState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getStateCalls++
	return f.state, f.stateErr
}

func (f *fakeDevice) SetMode(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setModeCalls++
	if _, ok := f.Profile().ModeCode(name); !ok {
		return fmt.Errorf("%w: unknown mode %q", komfovent.ErrValidation, name)
	}
	f.lastMode = name
	return f.writeErr
}

func (f *fakeDevice) SetSupplyTemp(ctx context.Context, celsius float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setTempCalls++
	f.lastTemp = celsius
	return f.writeErr
}

func (f *fakeDevice) SetRegister(ctx context.Context, number int, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setRegisterCalls++
	f.lastRegister, f.lastValue = number, value
	return f.writeErr
}

func (f *fakeDevice) GetSchedule(ctx context.Context) (komfovent.RawSchedule, error) {
	return f.raw, f.rawErr
}

func (f *fakeDevice) SetSchedule(ctx context.Context, commands map[string]int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setScheduleCalls++
	f.lastSchedule = commands
	return f.writeErr
}

func (f *fakeDevice) Profile() *komfovent.Profile { return komfovent.DefaultProfile() }
func (f *fakeDevice) BaseURL() string             { return "http://192.0.2.10" }

func (f *fakeDevice) setState(st komfovent.DeviceState, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state, f.stateErr = st, err
}

// fakeEventRepo records appends and the last List query.
type fakeEventRepo struct {
	mu       sync.Mutex
	appended []models.DeviceEvent
	appendFn func(models.DeviceEvent) error

	gotFrom  time.Time
	gotTo    time.Time
	gotType  string
	gotLimit int
	events   []models.DeviceEvent
	err      error
	calls    int
}

func (f *fakeEventRepo) Append(ctx context.Context, e models.DeviceEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendFn != nil {
		if err := f.appendFn(e); err != nil {
			return err
		}
	}
	f.appended = append(f.appended, e)
	return nil
}

func (f *fakeEventRepo) List(ctx context.Context, from, to time.Time, typ string, limit int) ([]models.DeviceEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.gotFrom, f.gotTo, f.gotType, f.gotLimit = from, to, typ, limit
	return f.events, f.err
}

func (f *fakeEventRepo) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.appended))
	for _, e := range f.appended {
		out = append(out, e.Type)
	}
	return out
}

func (f *fakeEventRepo) count(typ string) int {
	n := 0
	for _, t := range f.types() {
		if t == typ {
			n++
		}
	}
	return n
}

type fakeRecorder struct {
	mu       sync.Mutex
	records  int
	lastMode string
	ok, fail int
}

func (r *fakeRecorder) Record(st komfovent.DeviceState, mode string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records++
	r.lastMode = mode
}

func (r *fakeRecorder) RecordPoll(ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ok {
		r.ok++
	} else {
		r.fail++
	}
}

func ptrF(v float64) *float64 { return &v }
func ptrI(v int) *int         { return &v }

// emptyRaw returns the registers of a panel with no schedule rows in use.
func emptyRaw() komfovent.RawSchedule {
	l := komfovent.DefaultProfile().Schedule
	raw := komfovent.RawSchedule{
		WeekdayMask: make([]int, l.TotalRows()),
		Mode:        make([]int, l.TotalEntries()),
		Start:       make([]int, l.TotalEntries()),
		Stop:        make([]int, l.TotalEntries()),
	}
	for i := range raw.Mode {
		raw.Mode[i] = int(komfovent.ScheduleAway)
	}
	return raw
}
