package service

import (
	"context"
	"time"

	"komfovent_gateway/internal/komfovent"
	"komfovent_gateway/internal/logger"
	"komfovent_gateway/internal/models"
	"komfovent_gateway/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// DeviceControl changes the operating point of the unit.
type DeviceControl interface {
	SetMode(ctx context.Context, mode string) error
	SetTemperature(ctx context.Context, celsius float64) error
}

// Monitoring exposes the latest polled state.
type Monitoring interface {
	GetState(ctx context.Context) (models.Snapshot, error)
	Diagnostics(ctx context.Context) (Diagnostics, error)
}

// Schedule reads and writes the weekly programs.
type Schedule interface {
	GetSchedule(ctx context.Context) (ScheduleView, error)
	SetSchedule(ctx context.Context, u ScheduleUpdate) error
}

// Settings exposes the per-mode and device registers of the profile.
type Settings interface {
	ListSettings() []komfovent.Setting
	UpdateSetting(ctx context.Context, key string, v SettingValue) error
}

// Discovery sweeps the local network for panels.
type Discovery interface {
	Discover(ctx context.Context) ([]komfovent.DiscoveredDevice, error)
}

// EventLog exposes the journal with filtering.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.DeviceEvent, error)
}

// Poller reads the panel periodically until ctx is cancelled.
type Poller interface {
	Run(ctx context.Context, interval time.Duration)
	PollOnce(ctx context.Context) error
}

type Service struct {
	Authorization
	DeviceControl
	Monitoring
	Schedule
	Settings
	Discovery
	EventLog
	Poller
}

// Deps are the collaborators of NewService. Metrics may be nil.
type Deps struct {
	Repos      *repository.Repository
	Device     Device
	Discoverer Discovery
	Metrics    Recorder
	Auth       AuthConfig
	Log        *logger.Logger
}

// NewService wires the repositories and the panel client into the services.
func NewService(d Deps) *Service {
	device := NewDeviceService(d.Device)
	poller := NewPollerService(device, d.Repos.Snapshots, d.Repos.EventRepo, d.Metrics, d.Log)
	return &Service{
		Authorization: NewAuthService(d.Repos.Auth, d.Auth),
		DeviceControl: NewControlService(device, d.Repos.EventRepo, poller.PollOnce, d.Log),
		Monitoring:    NewMonitoringService(d.Repos.Snapshots, device, poller.PollOnce),
		Schedule:      NewScheduleService(device, d.Repos.EventRepo, d.Log),
		Settings:      NewSettingsService(device, d.Repos.EventRepo, d.Log),
		Discovery:     NewDiscoveryService(d.Discoverer, d.Log),
		EventLog:      NewEventLogService(d.Repos.EventRepo),
		Poller:        poller,
	}
}
