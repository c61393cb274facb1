package metrics

import (
	"net/http"

	"komfovent_gateway/internal/komfovent"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "komfovent"

// Metrics exposes the polled panel state as Prometheus gauges.
type Metrics struct {
	registry *prometheus.Registry
	gauges   map[string]prometheus.Gauge
	fields   []gaugeField
	up       prometheus.Gauge
	polls    *prometheus.CounterVec
	modes    *prometheus.GaugeVec
	modeList []string
}

type gaugeField struct {
	name  string
	value func(st komfovent.DeviceState) (float64, bool)
}

func floatOf(get func(st komfovent.DeviceState) *float64) func(komfovent.DeviceState) (float64, bool) {
	return func(st komfovent.DeviceState) (float64, bool) {
		if p := get(st); p != nil {
			return *p, true
		}
		return 0, false
	}
}

func intOf(get func(st komfovent.DeviceState) *int) func(komfovent.DeviceState) (float64, bool) {
	return func(st komfovent.DeviceState) (float64, bool) {
		if p := get(st); p != nil {
			return float64(*p), true
		}
		return 0, false
	}
}

func boolOf(get func(st komfovent.DeviceState) bool) func(komfovent.DeviceState) (float64, bool) {
	return func(st komfovent.DeviceState) (float64, bool) {
		if get(st) {
			return 1, true
		}
		return 0, true
	}
}

// New registers the gauges on a private registry. modes are the canonical
// mode names exported as a one-hot gauge.
func New(modes []string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		gauges:   map[string]prometheus.Gauge{},
		modeList: modes,
	}

	m.addGauge("supply_temp_celsius", "Supply air temperature (°C)",
		floatOf(func(s komfovent.DeviceState) *float64 { return s.SupplyTemp }))
	m.addGauge("extract_temp_celsius", "Extract air temperature (°C)",
		floatOf(func(s komfovent.DeviceState) *float64 { return s.ExtractTemp }))
	m.addGauge("outdoor_temp_celsius", "Outdoor air temperature (°C)",
		floatOf(func(s komfovent.DeviceState) *float64 { return s.OutdoorTemp }))
	m.addGauge("supply_temp_setpoint_celsius", "Supply temperature setpoint (°C)",
		floatOf(func(s komfovent.DeviceState) *float64 { return s.SupplyTempSetpoint }))

	m.addGauge("supply_fan_percent", "Supply fan level (%)",
		intOf(func(s komfovent.DeviceState) *int { return s.SupplyFanPercent }))
	m.addGauge("extract_fan_percent", "Extract fan level (%)",
		intOf(func(s komfovent.DeviceState) *int { return s.ExtractFanPercent }))
	m.addGauge("filter_contamination_percent", "Filter contamination (%)",
		intOf(func(s komfovent.DeviceState) *int { return s.FilterContamination }))
	m.addGauge("heat_exchanger_efficiency_percent", "Heat exchanger efficiency (%)",
		intOf(func(s komfovent.DeviceState) *int { return s.HeatExchangerEfficiency }))
	m.addGauge("humidity_percent", "Relative humidity (%)",
		intOf(func(s komfovent.DeviceState) *int { return s.Humidity }))

	m.addGauge("power_consumption_watts", "Power consumption (W)",
		floatOf(func(s komfovent.DeviceState) *float64 { return s.PowerConsumption }))
	m.addGauge("heat_recovery_watts", "Heat recovery power (W)",
		floatOf(func(s komfovent.DeviceState) *float64 { return s.HeatRecoveryPower }))
	m.addGauge("heating_power_watts", "Heating power (W)",
		floatOf(func(s komfovent.DeviceState) *float64 { return s.HeatingPower }))
	m.addGauge("energy_consumed_total_kwh", "Energy consumed since installation (kWh)",
		floatOf(func(s komfovent.DeviceState) *float64 { return s.EnergyConsumedTotal }))
	m.addGauge("energy_recovered_total_kwh", "Energy recovered since installation (kWh)",
		floatOf(func(s komfovent.DeviceState) *float64 { return s.EnergyRecoveredTotal }))

	m.addGauge("on", "1 when the unit is running",
		boolOf(komfovent.DeviceState.IsOn))
	m.addGauge("eco_mode", "1 when ECO mode is active",
		boolOf(komfovent.DeviceState.EcoMode))
	m.addGauge("heating_active", "1 when the heater draws power",
		boolOf(komfovent.DeviceState.HeatingActive))

	m.up = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "up",
		Help:      "1 when the last poll reached the panel",
	})
	m.polls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "polls_total",
		Help:      "Panel polls by result",
	}, []string{"result"})
	m.modes = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mode",
		Help:      "1 for the active operating mode",
	}, []string{"mode"})

	for _, g := range m.gauges {
		m.registry.MustRegister(g)
	}
	m.registry.MustRegister(m.up, m.polls, m.modes)
	return m
}

func (m *Metrics) addGauge(name, help string, value func(komfovent.DeviceState) (float64, bool)) {
	m.gauges[name] = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	})
	m.fields = append(m.fields, gaugeField{name: name, value: value})
}

// Record updates the gauges from a successful poll. Fields the panel did
// not report keep their previous value.
func (m *Metrics) Record(st komfovent.DeviceState, mode string) {
	for _, f := range m.fields {
		if v, ok := f.value(st); ok {
			m.gauges[f.name].Set(v)
		}
	}
	for _, name := range m.modeList {
		v := 0.0
		if name == mode {
			v = 1
		}
		m.modes.WithLabelValues(name).Set(v)
	}
}

// RecordPoll counts a poll and sets the up gauge.
func (m *Metrics) RecordPoll(ok bool) {
	if ok {
		m.up.Set(1)
		m.polls.WithLabelValues("ok").Inc()
		return
	}
	m.up.Set(0)
	m.polls.WithLabelValues("error").Inc()
}

// Handler serves the registry in the exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry is exposed for tests and for embedding in a wider registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
