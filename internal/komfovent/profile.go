package komfovent

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

//go:embed profiles/c6.yaml
var c6Profile []byte

// SettingKind tells how a setting is written to its register.
type SettingKind string

const (
	SettingNumber SettingKind = "number"
	SettingSwitch SettingKind = "switch"
)

// Switch register values. The panel's checkboxes post "on" when checked and
// nothing when cleared, so "0" is sent to clear explicitly.
const (
	switchOn  = "on"
	switchOff = "0"
)

// Endpoints are the panel paths used by the client.
type Endpoints struct {
	Auth     string `mapstructure:"auth"`
	Main     string `mapstructure:"main"`
	Detail   string `mapstructure:"detail"`
	Control  string `mapstructure:"control"`
	Schedule string `mapstructure:"schedule"`
}

// AuthSettings describe the panel login form.
type AuthSettings struct {
	MinBody       int      `mapstructure:"min_body"`
	UsernameField string   `mapstructure:"username_field"`
	PasswordField string   `mapstructure:"password_field"`
	LoginMarkers  []string `mapstructure:"login_markers"`
}

// ControlRegisters are the registers behind the convenience writes.
type ControlRegisters struct {
	Mode            int     `mapstructure:"mode"`
	SupplyTemp      int     `mapstructure:"supply_temp"`
	SupplyTempScale float64 `mapstructure:"supply_temp_scale"`
}

// ModeDef maps a canonical mode name to its device code and the strings the
// panel reports for it in each UI language.
type ModeDef struct {
	Name    string   `mapstructure:"name"`
	Code    int      `mapstructure:"code"`
	Aliases []string `mapstructure:"aliases"`
}

// ScheduleTags name the list elements of the schedule document.
type ScheduleTags struct {
	Program     string `mapstructure:"program"`
	WeekdayMask string `mapstructure:"weekday_mask"`
	Mode        string `mapstructure:"mode"`
	Start       string `mapstructure:"start"`
	Stop        string `mapstructure:"stop"`
}

// ScheduleLayout is the program/row/entry grid and its register bases.
type ScheduleLayout struct {
	Programs        int          `mapstructure:"programs"`
	Rows            int          `mapstructure:"rows"`
	Entries         int          `mapstructure:"entries"`
	WeekdayMaskBase int          `mapstructure:"weekday_mask_base"`
	ModeBase        int          `mapstructure:"mode_base"`
	StartBase       int          `mapstructure:"start_base"`
	StopBase        int          `mapstructure:"stop_base"`
	Tags            ScheduleTags `mapstructure:"tags"`
}

// TotalRows is the number of weekday-mask registers.
func (l ScheduleLayout) TotalRows() int { return l.Programs * l.Rows }

// TotalEntries is the number of mode/start/stop register triples.
func (l ScheduleLayout) TotalEntries() int { return l.TotalRows() * l.Entries }

// Setting is one configurable register.
type Setting struct {
	Key        string      `mapstructure:"key" json:"key"`
	Kind       SettingKind `mapstructure:"kind" json:"kind"`
	Register   int         `mapstructure:"register" json:"register"`
	Unit       string      `mapstructure:"unit" json:"unit,omitempty"`
	Min        float64     `mapstructure:"min" json:"min,omitempty"`
	Max        float64     `mapstructure:"max" json:"max,omitempty"`
	Step       float64     `mapstructure:"step" json:"step,omitempty"`
	Multiplier float64     `mapstructure:"multiplier" json:"multiplier,omitempty"`
}

// EncodeNumber range-checks v and scales it to the register's wire value.
func (s Setting) EncodeNumber(v float64) (string, error) {
	if s.Kind != SettingNumber {
		return "", fmt.Errorf("%w: %s is not a number setting", ErrValidation, s.Key)
	}
	if math.IsNaN(v) || v < s.Min || v > s.Max {
		return "", fmt.Errorf("%w: %s must be within %g..%g, got %g", ErrValidation, s.Key, s.Min, s.Max, v)
	}
	mult := s.Multiplier
	if mult == 0 {
		mult = 1
	}
	return formatScaled(v, mult), nil
}

// EncodeSwitch returns the wire value of a switch setting.
func (s Setting) EncodeSwitch(on bool) (string, error) {
	if s.Kind != SettingSwitch {
		return "", fmt.Errorf("%w: %s is not a switch setting", ErrValidation, s.Key)
	}
	if on {
		return switchOn, nil
	}
	return switchOff, nil
}

type modeSettingGroup struct {
	Name       string      `mapstructure:"name"`
	Kind       SettingKind `mapstructure:"kind"`
	Unit       string      `mapstructure:"unit"`
	Min        float64     `mapstructure:"min"`
	Max        float64     `mapstructure:"max"`
	Step       float64     `mapstructure:"step"`
	Multiplier float64     `mapstructure:"multiplier"`
	Registers  []int       `mapstructure:"registers"`
}

// Profile is the versioned register map of one panel firmware.
type Profile struct {
	Version        int                `mapstructure:"version"`
	Device         string             `mapstructure:"device"`
	Signature      string             `mapstructure:"signature"`
	DefaultName    string             `mapstructure:"default_name"`
	Endpoints      Endpoints          `mapstructure:"endpoints"`
	Auth           AuthSettings       `mapstructure:"auth"`
	Registers      ControlRegisters   `mapstructure:"registers"`
	Modes          []ModeDef          `mapstructure:"modes"`
	Schedule       ScheduleLayout     `mapstructure:"schedule"`
	ConfigModes    []string           `mapstructure:"config_modes"`
	ModeSettings   []modeSettingGroup `mapstructure:"mode_settings"`
	DeviceSettings []Setting          `mapstructure:"device_settings"`

	settings []Setting
	byKey    map[string]int
}

var defaultProfile = sync.OnceValue(func() *Profile {
	p, err := LoadProfile(bytes.NewReader(c6Profile))
	if err != nil {
		panic(fmt.Sprintf("komfovent: embedded C6 profile: %v", err))
	}
	return p
})

// DefaultProfile returns the embedded C6 profile.
func DefaultProfile() *Profile { return defaultProfile() }

// LoadProfileFile reads a profile from a YAML file on disk.
func LoadProfileFile(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open profile %q: %w", path, err)
	}
	defer f.Close()
	return LoadProfile(f)
}

// LoadProfile decodes and validates a YAML profile.
func LoadProfile(r io.Reader) (*Profile, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	var p Profile
	if err := v.Unmarshal(&p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	if err := p.expandSettings(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Profile) validate() error {
	switch {
	case p.Endpoints.Main == "" || p.Endpoints.Detail == "" || p.Endpoints.Control == "":
		return fmt.Errorf("profile %q: main, detail and control endpoints are required", p.Device)
	case len(p.Modes) == 0:
		return fmt.Errorf("profile %q: no modes", p.Device)
	case p.Schedule.Programs <= 0 || p.Schedule.Rows <= 0 || p.Schedule.Entries <= 0:
		return fmt.Errorf("profile %q: schedule grid must be positive", p.Device)
	}
	if p.Endpoints.Auth == "" {
		p.Endpoints.Auth = "/"
	}
	if p.Endpoints.Schedule == "" {
		p.Endpoints.Schedule = p.Endpoints.Control
	}
	if p.Registers.SupplyTempScale == 0 {
		p.Registers.SupplyTempScale = 10
	}
	if p.DefaultName == "" {
		p.DefaultName = "Komfovent"
	}
	return nil
}

func (p *Profile) expandSettings() error {
	p.settings = p.settings[:0]
	for _, g := range p.ModeSettings {
		if len(g.Registers) > len(p.ConfigModes) {
			return fmt.Errorf("profile %q: %s has %d registers for %d modes", p.Device, g.Name, len(g.Registers), len(p.ConfigModes))
		}
		for i, reg := range g.Registers {
			p.settings = append(p.settings, Setting{
				Key:        "mode_" + p.ConfigModes[i] + "_" + g.Name,
				Kind:       g.Kind,
				Register:   reg,
				Unit:       g.Unit,
				Min:        g.Min,
				Max:        g.Max,
				Step:       g.Step,
				Multiplier: g.Multiplier,
			})
		}
	}
	p.settings = append(p.settings, p.DeviceSettings...)

	p.byKey = make(map[string]int, len(p.settings))
	for i, s := range p.settings {
		if s.Kind != SettingNumber && s.Kind != SettingSwitch {
			return fmt.Errorf("profile %q: setting %s has unknown kind %q", p.Device, s.Key, s.Kind)
		}
		if _, dup := p.byKey[s.Key]; dup {
			return fmt.Errorf("profile %q: duplicate setting %s", p.Device, s.Key)
		}
		p.byKey[s.Key] = i
	}
	return nil
}

// Settings returns the expanded settings catalog in profile order.
func (p *Profile) Settings() []Setting {
	out := make([]Setting, len(p.settings))
	copy(out, p.settings)
	return out
}

// Setting looks up a setting by key.
func (p *Profile) Setting(key string) (Setting, bool) {
	i, ok := p.byKey[key]
	if !ok {
		return Setting{}, false
	}
	return p.settings[i], true
}

// ModeCode returns the device code for a canonical mode name, ignoring case.
func (p *Profile) ModeCode(name string) (int, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, m := range p.Modes {
		if m.Name == name {
			return m.Code, true
		}
	}
	return 0, false
}

// ModeNames lists the canonical mode names in profile order.
func (p *Profile) ModeNames() []string {
	names := make([]string, 0, len(p.Modes))
	for _, m := range p.Modes {
		names = append(names, m.Name)
	}
	return names
}

// CanonicalMode maps a mode string reported by the panel, in any UI
// language, to its canonical name.
func (p *Profile) CanonicalMode(reported string) (string, bool) {
	reported = strings.ToUpper(strings.TrimSpace(reported))
	if reported == "" {
		return "", false
	}
	for _, m := range p.Modes {
		for _, a := range m.Aliases {
			if strings.ToUpper(a) == reported {
				return m.Name, true
			}
		}
	}
	return "", false
}
