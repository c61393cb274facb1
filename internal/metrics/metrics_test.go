package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"komfovent_gateway/internal/komfovent"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func ptrF(v float64) *float64 { return &v }
func ptrI(v int) *int         { return &v }

func TestRecord_SetsGauges(t *testing.T) {
	m := New([]string{"away", "normal", "intensive", "boost"})

	m.Record(komfovent.DeviceState{
		SupplyTemp:          ptrF(21.5),
		FilterContamination: ptrI(47),
		HeatingPower:        ptrF(300),
		Flags:               komfovent.FlagEco,
	}, "boost")

	if got := testutil.ToFloat64(m.gauges["supply_temp_celsius"]); got != 21.5 {
		t.Fatalf("supply temp: %v", got)
	}
	if got := testutil.ToFloat64(m.gauges["filter_contamination_percent"]); got != 47 {
		t.Fatalf("filter: %v", got)
	}
	if testutil.ToFloat64(m.gauges["on"]) != 1 || testutil.ToFloat64(m.gauges["eco_mode"]) != 1 || testutil.ToFloat64(m.gauges["heating_active"]) != 1 {
		t.Fatalf("derived gauges not set")
	}
	if testutil.ToFloat64(m.modes.WithLabelValues("boost")) != 1 || testutil.ToFloat64(m.modes.WithLabelValues("normal")) != 0 {
		t.Fatalf("mode one-hot wrong")
	}

	// absent fields keep the previous value
	m.Record(komfovent.DeviceState{Flags: komfovent.FlagStopped}, "")
	if got := testutil.ToFloat64(m.gauges["supply_temp_celsius"]); got != 21.5 {
		t.Fatalf("supply temp overwritten: %v", got)
	}
	if testutil.ToFloat64(m.gauges["on"]) != 0 {
		t.Fatalf("stopped unit must report on=0")
	}
	if testutil.ToFloat64(m.modes.WithLabelValues("boost")) != 0 {
		t.Fatalf("unknown mode must clear the one-hot gauge")
	}
}

func TestRecordPoll(t *testing.T) {
	m := New(nil)
	m.RecordPoll(true)
	m.RecordPoll(false)
	m.RecordPoll(false)

	if testutil.ToFloat64(m.up) != 0 {
		t.Fatalf("up must follow the last poll")
	}
	if got := testutil.ToFloat64(m.polls.WithLabelValues("error")); got != 2 {
		t.Fatalf("error polls: %v", got)
	}
	if got := testutil.ToFloat64(m.polls.WithLabelValues("ok")); got != 1 {
		t.Fatalf("ok polls: %v", got)
	}
}

func TestHandler_Exposition(t *testing.T) {
	m := New([]string{"normal"})
	m.Record(komfovent.DeviceState{OutdoorTemp: ptrF(-3.5)}, "normal")
	m.RecordPoll(true)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		"komfovent_outdoor_temp_celsius -3.5",
		`komfovent_mode{mode="normal"} 1`,
		"komfovent_up 1",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("exposition lacks %q:\n%s", want, body)
		}
	}
}
