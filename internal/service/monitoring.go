package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"komfovent_gateway/internal/komfovent"
	"komfovent_gateway/internal/models"
	"komfovent_gateway/internal/repository"
)

var errNoSnapshot = errors.New("no state has been read from the panel yet")

// Diagnostics is the support dump of the gateway's view of the unit.
type Diagnostics struct {
	Device DiagnosticsDevice `json:"device"`
	State  DiagnosticsState  `json:"state"`
}

type DiagnosticsDevice struct {
	Host           string `json:"host"`
	Model          string `json:"model"`
	ProfileVersion int    `json:"profile_version"`
	ReadAt         string `json:"read_at"`
	Available      bool   `json:"available"`
	LastError      string `json:"last_error,omitempty"`
	FailedSince    string `json:"failed_since,omitempty"`
}

type DiagnosticsState struct {
	Mode                string   `json:"mode"`
	SupplyTemp          *float64 `json:"supply_temp"`
	ExtractTemp         *float64 `json:"extract_temp"`
	OutdoorTemp         *float64 `json:"outdoor_temp"`
	SupplyTempSetpoint  *float64 `json:"supply_temp_setpoint"`
	SupplyFanPercent    *int     `json:"supply_fan_percent"`
	ExtractFanPercent   *int     `json:"extract_fan_percent"`
	FilterContamination *int     `json:"filter_contamination"`
	PowerConsumption    *float64 `json:"power_consumption"`
	Flags               uint32   `json:"flags"`
	FlagsBinary         string   `json:"flags_binary"`
	IsOn                bool     `json:"is_on"`
	EcoMode             bool     `json:"eco_mode"`
	HeatingActive       bool     `json:"heating_active"`
}

type MonitoringService struct {
	snapshots repository.SnapshotRepo
	device    Device
	refresh   func(ctx context.Context) error
}

func NewMonitoringService(snapshots repository.SnapshotRepo, device Device, refresh func(context.Context) error) *MonitoringService {
	return &MonitoringService{snapshots: snapshots, device: device, refresh: refresh}
}

// GetState returns the latest snapshot. Before the first poll it reads the
// panel once. After a failed poll the last reading is returned with
// Available false.
func (s *MonitoringService) GetState(ctx context.Context) (models.Snapshot, error) {
	snap, ok, err := s.snapshots.Load(ctx)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	if ok {
		return snap, nil
	}
	if s.refresh != nil {
		if err := s.refresh(ctx); err != nil {
			return models.Snapshot{}, err
		}
		if snap, ok, err = s.snapshots.Load(ctx); err != nil {
			return models.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
		}
	}
	if !ok {
		return models.Snapshot{}, fmt.Errorf("%w: %w", komfovent.ErrConnection, errNoSnapshot)
	}
	return snap, nil
}

// Diagnostics describes the device and its last known state.
func (s *MonitoringService) Diagnostics(ctx context.Context) (Diagnostics, error) {
	snap, err := s.GetState(ctx)
	if err != nil {
		return Diagnostics{}, err
	}
	st := snap.State
	p := s.device.Profile()
	dev := DiagnosticsDevice{
		Host:           s.device.BaseURL(),
		Model:          p.Device,
		ProfileVersion: p.Version,
		ReadAt:         snap.ReadAt.UTC().Format(time.RFC3339),
		Available:      snap.Available,
		LastError:      snap.LastError,
	}
	if snap.FailedSince != nil {
		dev.FailedSince = snap.FailedSince.UTC().Format(time.RFC3339)
	}
	return Diagnostics{
		Device: dev,
		State: DiagnosticsState{
			Mode:                st.Mode,
			SupplyTemp:          st.SupplyTemp,
			ExtractTemp:         st.ExtractTemp,
			OutdoorTemp:         st.OutdoorTemp,
			SupplyTempSetpoint:  st.SupplyTempSetpoint,
			SupplyFanPercent:    st.SupplyFanPercent,
			ExtractFanPercent:   st.ExtractFanPercent,
			FilterContamination: st.FilterContamination,
			PowerConsumption:    st.PowerConsumption,
			Flags:               uint32(st.Flags),
			FlagsBinary:         st.Flags.Binary(),
			IsOn:                st.IsOn(),
			EcoMode:             st.EcoMode(),
			HeatingActive:       st.HeatingActive(),
		},
	}, nil
}
