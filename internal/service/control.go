package service

import (
	"context"
	"fmt"
	"math"

	"komfovent_gateway/internal/komfovent"
	"komfovent_gateway/internal/logger"
	"komfovent_gateway/internal/models"
	"komfovent_gateway/internal/repository"
)

// Supply temperature range accepted by the panel UI.
const (
	MinSupplyTempC = 10.0
	MaxSupplyTempC = 30.0
)

type ControlService struct {
	device  Device
	events  repository.EventRepo
	refresh func(ctx context.Context) error
	log     *logger.Logger
}

// NewControlService builds the control service. refresh, when set, is run
// after every successful write so the snapshot reflects the change.
func NewControlService(device Device, events repository.EventRepo, refresh func(context.Context) error, log *logger.Logger) *ControlService {
	return &ControlService{device: device, events: events, refresh: refresh, log: log}
}

// SetMode switches to away, normal, intensive or boost.
func (s *ControlService) SetMode(ctx context.Context, mode string) error {
	if err := s.device.SetMode(ctx, mode); err != nil {
		return fmt.Errorf("set mode %q: %w", mode, err)
	}
	journal(ctx, s.events, s.log, models.EventCommand, "mode set to "+mode,
		map[string]any{"action": "set_mode", "mode": mode})
	s.afterWrite(ctx)
	return nil
}

// SetTemperature writes the supply setpoint, 10..30 °C.
func (s *ControlService) SetTemperature(ctx context.Context, celsius float64) error {
	if math.IsNaN(celsius) || celsius < MinSupplyTempC || celsius > MaxSupplyTempC {
		return fmt.Errorf("%w: temperature must be within %g..%g °C, got %g",
			komfovent.ErrValidation, MinSupplyTempC, MaxSupplyTempC, celsius)
	}
	if err := s.device.SetSupplyTemp(ctx, celsius); err != nil {
		return fmt.Errorf("set supply temperature: %w", err)
	}
	journal(ctx, s.events, s.log, models.EventCommand, fmt.Sprintf("supply temperature set to %.1f °C", celsius),
		map[string]any{"action": "set_temperature", "temperature": celsius})
	s.afterWrite(ctx)
	return nil
}

func (s *ControlService) afterWrite(ctx context.Context) {
	if s.refresh == nil {
		return
	}
	if err := s.refresh(ctx); err != nil && s.log != nil {
		s.log.Warnw("refresh_after_write_failed", "err", err)
	}
}
