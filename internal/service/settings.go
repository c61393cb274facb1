package service

import (
	"context"
	"errors"
	"fmt"

	"komfovent_gateway/internal/komfovent"
	"komfovent_gateway/internal/logger"
	"komfovent_gateway/internal/models"
	"komfovent_gateway/internal/repository"
)

// ErrSettingNotFound is returned for a key the profile does not define.
var ErrSettingNotFound = errors.New("setting not found")

type SettingsService struct {
	device Device
	events repository.EventRepo
	log    *logger.Logger
}

func NewSettingsService(device Device, events repository.EventRepo, log *logger.Logger) *SettingsService {
	return &SettingsService{device: device, events: events, log: log}
}

func (s *SettingsService) ListSettings() []komfovent.Setting {
	return s.device.Profile().Settings()
}

// UpdateSetting writes a number setting from v.Value or a switch from v.On.
func (s *SettingsService) UpdateSetting(ctx context.Context, key string, v SettingValue) error {
	setting, ok := s.device.Profile().Setting(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrSettingNotFound, key)
	}

	var (
		wire string
		err  error
		meta = map[string]any{"action": "set_setting", "key": key, "register": setting.Register}
	)
	switch setting.Kind {
	case komfovent.SettingNumber:
		if v.Value == nil {
			return fmt.Errorf("%w: %s needs a numeric value", komfovent.ErrValidation, key)
		}
		wire, err = setting.EncodeNumber(*v.Value)
		meta["value"] = *v.Value
	case komfovent.SettingSwitch:
		if v.On == nil {
			return fmt.Errorf("%w: %s needs on=true|false", komfovent.ErrValidation, key)
		}
		wire, err = setting.EncodeSwitch(*v.On)
		meta["on"] = *v.On
	default:
		return fmt.Errorf("%w: %s has unsupported kind %q", komfovent.ErrValidation, key, setting.Kind)
	}
	if err != nil {
		return err
	}

	if err := s.device.SetRegister(ctx, setting.Register, wire); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	journal(ctx, s.events, s.log, models.EventCommand, "setting "+key+" updated", meta)
	return nil
}
