package komfovent

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

type fieldSetter func(s *DeviceState, text string)

// stateTags is the tag catalog of the main and detail documents.
var stateTags = map[string]fieldSetter{
	"OMO": func(s *DeviceState, v string) { s.Mode = v },
	"VF":  func(s *DeviceState, v string) { s.Flags = parseFlags(v) },

	"AI0": floatField(func(s *DeviceState) **float64 { return &s.SupplyTemp }),
	"AI1": floatField(func(s *DeviceState) **float64 { return &s.ExtractTemp }),
	"AI2": floatField(func(s *DeviceState) **float64 { return &s.OutdoorTemp }),
	"ST":  floatField(func(s *DeviceState) **float64 { return &s.SupplyTempSetpoint }),

	"SAF": intField(func(s *DeviceState) **int { return &s.SupplyFanPercent }),
	"EAF": intField(func(s *DeviceState) **int { return &s.ExtractFanPercent }),
	"FCG": intField(func(s *DeviceState) **int { return &s.FilterContamination }),

	"EC1":  intField(func(s *DeviceState) **int { return &s.HeatExchangerEfficiency }),
	"EC2":  floatField(func(s *DeviceState) **float64 { return &s.HeatRecoveryPower }),
	"EC3":  floatField(func(s *DeviceState) **float64 { return &s.PowerConsumption }),
	"EC4":  floatField(func(s *DeviceState) **float64 { return &s.HeatingPower }),
	"EC5A": floatField(func(s *DeviceState) **float64 { return &s.SPIActual }),
	"EC5D": floatField(func(s *DeviceState) **float64 { return &s.SPIDaily }),
	"EC6D": floatField(func(s *DeviceState) **float64 { return &s.EnergyConsumedDaily }),
	"EC6M": floatField(func(s *DeviceState) **float64 { return &s.EnergyConsumedMonthly }),
	"EC6T": floatField(func(s *DeviceState) **float64 { return &s.EnergyConsumedTotal }),
	"EC7D": floatField(func(s *DeviceState) **float64 { return &s.EnergyHeatingDaily }),
	"EC7M": floatField(func(s *DeviceState) **float64 { return &s.EnergyHeatingMonthly }),
	"EC7T": floatField(func(s *DeviceState) **float64 { return &s.EnergyHeatingTotal }),
	"EC8D": floatField(func(s *DeviceState) **float64 { return &s.EnergyRecoveredDaily }),
	"EC8M": floatField(func(s *DeviceState) **float64 { return &s.EnergyRecoveredMonthly }),
	"EC8T": floatField(func(s *DeviceState) **float64 { return &s.EnergyRecoveredTotal }),

	"AQ": intField(func(s *DeviceState) **int { return &s.AirQuality }),
	"AH": intField(func(s *DeviceState) **int { return &s.Humidity }),

	// detail document
	"SFI": intField(func(s *DeviceState) **int { return &s.SupplyFanIntensity }),
	"EFI": intField(func(s *DeviceState) **int { return &s.ExtractFanIntensity }),
	"HE":  intField(func(s *DeviceState) **int { return &s.HeatExchangerPercent }),
	"EH":  intField(func(s *DeviceState) **int { return &s.ElectricHeaterPercent }),
}

// ParseState builds a DeviceState from the main and detail status
// documents. A malformed document fails the whole call with ErrParse.
func ParseState(main, detail []byte) (DeviceState, error) {
	mainFields, err := readDocument(main)
	if err != nil {
		return DeviceState{}, fmt.Errorf("main document: %w", err)
	}
	detailFields, err := readDocument(detail)
	if err != nil {
		return DeviceState{}, fmt.Errorf("detail document: %w", err)
	}
	for tag, text := range detailFields {
		if _, dup := mainFields[tag]; !dup {
			mainFields[tag] = text
		}
	}

	var s DeviceState
	for tag, text := range mainFields {
		if set, ok := stateTags[tag]; ok {
			set(&s, text)
		}
	}
	return s, nil
}

// readDocument collects the text of every child of the root element.
func readDocument(data []byte) (map[string]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel

	fields := make(map[string]string)
	var (
		depth    int
		seenRoot bool
		doneRoot bool
		current  string
		text     strings.Builder
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if doneRoot {
				return nil, fmt.Errorf("%w: element <%s> after root", ErrParse, t.Name.Local)
			}
			depth++
			if depth == 1 {
				seenRoot = true
			}
			if depth == 2 {
				current = t.Name.Local
				text.Reset()
			}
		case xml.EndElement:
			if depth == 2 {
				fields[current] = strings.TrimSpace(text.String())
			}
			depth--
			if depth == 0 {
				doneRoot = true
			}
		case xml.CharData:
			switch depth {
			case 0:
				if len(bytes.TrimSpace(t)) > 0 {
					return nil, fmt.Errorf("%w: text outside root element", ErrParse)
				}
			case 2:
				text.Write(t)
			}
		}
	}
	if !seenRoot {
		return nil, fmt.Errorf("%w: no root element", ErrParse)
	}
	if depth != 0 {
		return nil, fmt.Errorf("%w: unterminated document", ErrParse)
	}
	return fields, nil
}

func floatField(ref func(*DeviceState) **float64) fieldSetter {
	return func(s *DeviceState, text string) {
		if v, ok := parseNumber(text); ok {
			*ref(s) = &v
		}
	}
}

func intField(ref func(*DeviceState) **int) fieldSetter {
	return func(s *DeviceState, text string) {
		if v, ok := parseNumber(text); ok {
			n := int(math.Round(v))
			*ref(s) = &n
		}
	}
}

// parseNumber reads the leading number of text, so "21.5 °C", "47%" and
// "0,35" all parse.
func parseNumber(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	end := 0
	for end < len(text) && strings.IndexByte("+-0123456789.,", text[end]) >= 0 {
		end++
	}
	if end == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(text[:end], ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseFlags(text string) Flags {
	text = strings.TrimSpace(text)
	var (
		v   uint64
		err error
	)
	if rest, ok := strings.CutPrefix(strings.ToLower(text), "0x"); ok {
		v, err = strconv.ParseUint(rest, 16, 32)
	} else {
		v, err = strconv.ParseUint(text, 10, 32)
	}
	if err != nil {
		return 0
	}
	return Flags(v)
}

func formatScaled(v, mult float64) string {
	return strconv.Itoa(int(math.Round(v * mult)))
}
