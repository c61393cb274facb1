package service

import (
	"context"
	"sync"

	"komfovent_gateway/internal/komfovent"
)

// Device is the subset of the panel client the services use.
type Device interface {
	Authenticate(ctx context.Context) (bool, error)
	GetState(ctx context.Context) (komfovent.DeviceState, error)
	SetMode(ctx context.Context, name string) error
	SetSupplyTemp(ctx context.Context, celsius float64) error
	SetRegister(ctx context.Context, number int, value string) error
	GetSchedule(ctx context.Context) (komfovent.RawSchedule, error)
	SetSchedule(ctx context.Context, commands map[string]int) error
	Profile() *komfovent.Profile
	BaseURL() string
}

var (
	_ Device = (*komfovent.Client)(nil)
	_ Device = (*DeviceService)(nil)
)

// DeviceService serializes every call to the panel. The poller, the HTTP
// handlers and the WebSocket streams share one client through it.
type DeviceService struct {
	mu  sync.Mutex
	dev Device
}

func NewDeviceService(dev Device) *DeviceService {
	return &DeviceService{dev: dev}
}

func (s *DeviceService) Authenticate(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.Authenticate(ctx)
}

func (s *DeviceService) GetState(ctx context.Context) (komfovent.DeviceState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.GetState(ctx)
}

func (s *DeviceService) SetMode(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.SetMode(ctx, name)
}

func (s *DeviceService) SetSupplyTemp(ctx context.Context, celsius float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.SetSupplyTemp(ctx, celsius)
}

func (s *DeviceService) SetRegister(ctx context.Context, number int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.SetRegister(ctx, number, value)
}

func (s *DeviceService) GetSchedule(ctx context.Context) (komfovent.RawSchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.GetSchedule(ctx)
}

func (s *DeviceService) SetSchedule(ctx context.Context, commands map[string]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.SetSchedule(ctx, commands)
}

// Profile and BaseURL are immutable and need no lock.
func (s *DeviceService) Profile() *komfovent.Profile { return s.dev.Profile() }
func (s *DeviceService) BaseURL() string             { return s.dev.BaseURL() }
