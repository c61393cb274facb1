package komfovent

import (
	"errors"
	"testing"
)

const fullMainXML = `<?xml version="1.0"?>
<data>
    <OMO>NORMALNY</OMO>
    <AI0>21.5</AI0>
    <AI1>23.0</AI1>
    <AI2>5.0</AI2>
    <ST>21.0</ST>
    <SAF>50</SAF>
    <EAF>50</EAF>
    <FCG>47</FCG>
    <VF>0</VF>
    <EC1>90</EC1>
    <EC2>1500</EC2>
    <EC3>150</EC3>
    <EC4>0</EC4>
    <EC5A>0.35</EC5A>
    <EC5D>0.32</EC5D>
    <EC6D>2.5</EC6D>
    <EC6M>75.0</EC6M>
    <EC6T>1500.0</EC6T>
    <EC7D>0.5</EC7D>
    <EC7M>15.0</EC7M>
    <EC7T>300.0</EC7T>
    <EC8D>5.0</EC8D>
    <EC8M>150.0</EC8M>
    <EC8T>3000.0</EC8T>
    <AQ>1</AQ>
    <AH>45</AH>
</data>`

const fullDetailXML = `<?xml version="1.0"?>
<data>
    <SFI>50</SFI>
    <EFI>50</EFI>
    <HE>85</HE>
    <EH>0</EH>
</data>`

func mustParse(t *testing.T, main, detail string) DeviceState {
	t.Helper()
	st, err := ParseState([]byte(main), []byte(detail))
	if err != nil {
		t.Fatalf("ParseState: %v", err)
	}
	return st
}

func wantFloat(t *testing.T, name string, got *float64, want float64) {
	t.Helper()
	if got == nil {
		t.Fatalf("%s: got nil, want %v", name, want)
	}
	if *got != want {
		t.Fatalf("%s: got %v, want %v", name, *got, want)
	}
}

func wantInt(t *testing.T, name string, got *int, want int) {
	t.Helper()
	if got == nil {
		t.Fatalf("%s: got nil, want %d", name, want)
	}
	if *got != want {
		t.Fatalf("%s: got %d, want %d", name, *got, want)
	}
}

func TestParseState_Full(t *testing.T) {
	st := mustParse(t, fullMainXML, fullDetailXML)

	if st.Mode != "NORMALNY" {
		t.Fatalf("mode: got %q", st.Mode)
	}
	wantFloat(t, "supply_temp", st.SupplyTemp, 21.5)
	wantFloat(t, "extract_temp", st.ExtractTemp, 23.0)
	wantFloat(t, "outdoor_temp", st.OutdoorTemp, 5.0)
	wantFloat(t, "supply_temp_setpoint", st.SupplyTempSetpoint, 21.0)
	wantInt(t, "supply_fan_percent", st.SupplyFanPercent, 50)
	wantInt(t, "extract_fan_percent", st.ExtractFanPercent, 50)
	wantInt(t, "filter_contamination", st.FilterContamination, 47)
	wantInt(t, "heat_exchanger_percent", st.HeatExchangerPercent, 85)
	wantInt(t, "heat_exchanger_efficiency", st.HeatExchangerEfficiency, 90)
	wantInt(t, "electric_heater_percent", st.ElectricHeaterPercent, 0)
	wantInt(t, "supply_fan_intensity", st.SupplyFanIntensity, 50)
	wantInt(t, "extract_fan_intensity", st.ExtractFanIntensity, 50)
	wantFloat(t, "heat_recovery_power", st.HeatRecoveryPower, 1500)
	wantFloat(t, "power_consumption", st.PowerConsumption, 150)
	wantFloat(t, "heating_power", st.HeatingPower, 0)
	wantFloat(t, "spi_actual", st.SPIActual, 0.35)
	wantFloat(t, "spi_daily", st.SPIDaily, 0.32)
	wantFloat(t, "energy_consumed_daily", st.EnergyConsumedDaily, 2.5)
	wantFloat(t, "energy_consumed_monthly", st.EnergyConsumedMonthly, 75)
	wantFloat(t, "energy_consumed_total", st.EnergyConsumedTotal, 1500)
	wantFloat(t, "energy_heating_daily", st.EnergyHeatingDaily, 0.5)
	wantFloat(t, "energy_heating_monthly", st.EnergyHeatingMonthly, 15)
	wantFloat(t, "energy_heating_total", st.EnergyHeatingTotal, 300)
	wantFloat(t, "energy_recovered_daily", st.EnergyRecoveredDaily, 5)
	wantFloat(t, "energy_recovered_monthly", st.EnergyRecoveredMonthly, 150)
	wantFloat(t, "energy_recovered_total", st.EnergyRecoveredTotal, 3000)
	wantInt(t, "air_quality", st.AirQuality, 1)
	wantInt(t, "humidity", st.Humidity, 45)

	if st.Flags != 0 || !st.IsOn() || st.EcoMode() || st.HeatingActive() {
		t.Fatalf("derived flags wrong: flags=%d on=%v eco=%v heating=%v", st.Flags, st.IsOn(), st.EcoMode(), st.HeatingActive())
	}
	if mode, ok := st.CanonicalMode(nil); !ok || mode != "normal" {
		t.Fatalf("canonical mode: got %q,%v", mode, ok)
	}
}

func TestParseState_MinimalLeavesFieldsNil(t *testing.T) {
	st := mustParse(t, `<?xml version="1.0"?><data><OMO>OFF</OMO></data>`, `<?xml version="1.0"?><data></data>`)

	if st.Mode != "OFF" {
		t.Fatalf("mode: got %q", st.Mode)
	}
	if st.SupplyTemp != nil || st.FilterContamination != nil || st.HeatingPower != nil || st.SupplyFanIntensity != nil {
		t.Fatalf("absent tags must be nil: %+v", st)
	}
	if st.Flags != 0 {
		t.Fatalf("flags default must be 0, got %d", st.Flags)
	}
	if _, known := st.FilterDirty(); known {
		t.Fatalf("filter state must be unknown without FCG")
	}
}

func TestParseState_ZeroIsNotAbsent(t *testing.T) {
	st := mustParse(t, `<data><AI2>0</AI2></data>`, `<data/>`)
	wantFloat(t, "outdoor_temp", st.OutdoorTemp, 0)
	if st.SupplyTemp != nil {
		t.Fatalf("supply_temp must be nil")
	}
}

func TestParseState_Malformed(t *testing.T) {
	cases := []struct {
		name         string
		main, detail string
	}{
		{"main_not_xml", "not xml", "<data/>"},
		{"both_not_xml", "not xml", ""},
		{"detail_empty", "<data><OMO>NORMAL</OMO></data>", ""},
		{"detail_unterminated", "<data/>", "<data><SFI>50</SFI>"},
		{"main_mismatched_tags", "<data><AI0>1</AI1></data>", "<data/>"},
		{"two_roots", "<data/><data/>", "<data/>"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, err := ParseState([]byte(tc.main), []byte(tc.detail))
			if !errors.Is(err, ErrParse) {
				t.Fatalf("expected ErrParse, got %v", err)
			}
			if st != (DeviceState{}) {
				t.Fatalf("expected zero state on error, got %+v", st)
			}
		})
	}
}

func TestParseState_TolerantNumbers(t *testing.T) {
	st := mustParse(t,
		`<data><AI0> 21.5 °C </AI0><FCG>81%</FCG><EC5A>0,35</EC5A><AI1>n/a</AI1><EC4>1200</EC4><VF>3</VF></data>`,
		`<data><HE>84.6</HE></data>`)

	wantFloat(t, "supply_temp", st.SupplyTemp, 21.5)
	wantInt(t, "filter_contamination", st.FilterContamination, 81)
	wantFloat(t, "spi_actual", st.SPIActual, 0.35)
	wantInt(t, "heat_exchanger_percent", st.HeatExchangerPercent, 85)
	if st.ExtractTemp != nil {
		t.Fatalf("unparsable text must leave the field nil")
	}
	if dirty, known := st.FilterDirty(); !known || !dirty {
		t.Fatalf("filter must be dirty at 81%%")
	}
	if !st.HeatingActive() {
		t.Fatalf("heating_power > 0 must mean heating active")
	}
	if st.IsOn() || !st.EcoMode() || st.AutoMode() {
		t.Fatalf("flags 0b11: on=%v eco=%v auto=%v", st.IsOn(), st.EcoMode(), st.AutoMode())
	}
	if st.Flags.Binary() != "0b11" {
		t.Fatalf("binary: got %s", st.Flags.Binary())
	}
}

func TestParseState_Windows1250(t *testing.T) {
	main := "<?xml version=\"1.0\" encoding=\"windows-1250\"?><data><OMO>NIEOBECNO\x8c\xc6</OMO></data>"
	st := mustParse(t, main, "<data/>")

	if st.Mode != "NIEOBECNOŚĆ" {
		t.Fatalf("mode: got %q", st.Mode)
	}
	if mode, ok := st.CanonicalMode(nil); !ok || mode != "away" {
		t.Fatalf("canonical mode: got %q,%v", mode, ok)
	}
}

func TestParseState_DetailDoesNotOverrideMain(t *testing.T) {
	st := mustParse(t, `<data><AI0>20</AI0></data>`, `<data><AI0>99</AI0><SFI>40</SFI></data>`)
	wantFloat(t, "supply_temp", st.SupplyTemp, 20)
	wantInt(t, "supply_fan_intensity", st.SupplyFanIntensity, 40)
}

func TestParseFlags(t *testing.T) {
	cases := map[string]Flags{
		"0":    0,
		"5":    FlagStopped | FlagAuto,
		"0x02": FlagEco,
		"010":  10,
		"junk": 0,
	}
	for in, want := range cases {
		if got := parseFlags(in); got != want {
			t.Errorf("parseFlags(%q) = %d, want %d", in, got, want)
		}
	}
}
