package komfovent

import (
	"strconv"
)

// FilterWarningThreshold is the filter contamination, in percent, from
// which the filter is reported dirty.
const FilterWarningThreshold = 80

// Flags is the VF status bitmask reported by the panel.
type Flags uint32

// Named VF bits.
const (
	FlagStopped Flags = 1 << iota // unit switched off
	FlagEco                       // ECO mode active
	FlagAuto                      // AUTO mode active
)

// Has reports whether every bit of f2 is set.
func (f Flags) Has(f2 Flags) bool { return f&f2 == f2 }

// Binary renders the mask the way diagnostics show it, e.g. "0b101".
func (f Flags) Binary() string { return "0b" + strconv.FormatUint(uint64(f), 2) }

// DeviceState is one snapshot of the unit. Nil fields were not reported.
type DeviceState struct {
	Mode string `json:"mode"`

	SupplyTemp         *float64 `json:"supply_temp"`
	ExtractTemp        *float64 `json:"extract_temp"`
	OutdoorTemp        *float64 `json:"outdoor_temp"`
	SupplyTempSetpoint *float64 `json:"supply_temp_setpoint"`

	SupplyFanPercent    *int `json:"supply_fan_percent"`
	ExtractFanPercent   *int `json:"extract_fan_percent"`
	SupplyFanIntensity  *int `json:"supply_fan_intensity"`
	ExtractFanIntensity *int `json:"extract_fan_intensity"`
	FilterContamination *int `json:"filter_contamination"`

	HeatExchangerPercent    *int     `json:"heat_exchanger_percent"`
	HeatExchangerEfficiency *int     `json:"heat_exchanger_efficiency"`
	ElectricHeaterPercent   *int     `json:"electric_heater_percent"`
	HeatRecoveryPower       *float64 `json:"heat_recovery_power"`
	PowerConsumption        *float64 `json:"power_consumption"`
	HeatingPower            *float64 `json:"heating_power"`

	SPIActual *float64 `json:"spi_actual"`
	SPIDaily  *float64 `json:"spi_daily"`

	EnergyConsumedDaily    *float64 `json:"energy_consumed_daily"`
	EnergyConsumedMonthly  *float64 `json:"energy_consumed_monthly"`
	EnergyConsumedTotal    *float64 `json:"energy_consumed_total"`
	EnergyHeatingDaily     *float64 `json:"energy_heating_daily"`
	EnergyHeatingMonthly   *float64 `json:"energy_heating_monthly"`
	EnergyHeatingTotal     *float64 `json:"energy_heating_total"`
	EnergyRecoveredDaily   *float64 `json:"energy_recovered_daily"`
	EnergyRecoveredMonthly *float64 `json:"energy_recovered_monthly"`
	EnergyRecoveredTotal   *float64 `json:"energy_recovered_total"`

	AirQuality *int `json:"air_quality"`
	Humidity   *int `json:"humidity"`

	Flags Flags `json:"flags"`
}

// IsOn reports whether the unit is running.
func (s DeviceState) IsOn() bool { return !s.Flags.Has(FlagStopped) }

// EcoMode reports whether ECO mode is active.
func (s DeviceState) EcoMode() bool { return s.Flags.Has(FlagEco) }

// AutoMode reports whether AUTO mode is active.
func (s DeviceState) AutoMode() bool { return s.Flags.Has(FlagAuto) }

// HeatingActive reports whether the heater currently draws power.
func (s DeviceState) HeatingActive() bool {
	return s.HeatingPower != nil && *s.HeatingPower > 0
}

// FilterDirty reports whether the filter contamination reached the warning
// threshold. The second result is false when contamination is unknown.
func (s DeviceState) FilterDirty() (dirty, known bool) {
	if s.FilterContamination == nil {
		return false, false
	}
	return *s.FilterContamination >= FilterWarningThreshold, true
}

// CanonicalMode maps the reported mode to away/normal/intensive/boost using
// the profile aliases.
func (s DeviceState) CanonicalMode(p *Profile) (string, bool) {
	if p == nil {
		p = DefaultProfile()
	}
	return p.CanonicalMode(s.Mode)
}
