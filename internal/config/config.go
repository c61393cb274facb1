// Package config loads the gateway settings from configs/config.yml,
// KOMFOVENT_* environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"komfovent_gateway/internal/komfovent"
	"komfovent_gateway/internal/logger"
	"komfovent_gateway/internal/server"
	"komfovent_gateway/internal/service"

	"github.com/spf13/viper"
)

const envPrefix = "KOMFOVENT"

type Config struct {
	HTTP      HTTPConfig                 `mapstructure:"http"`
	DB        DBConfig                   `mapstructure:"db"`
	Log       LogConfig                  `mapstructure:"log"`
	Device    DeviceConfig               `mapstructure:"device"`
	Discovery komfovent.DiscoveryOptions `mapstructure:"discovery"`
	Auth      service.AuthConfig         `mapstructure:"auth"`
}

type HTTPConfig struct {
	Port           string `mapstructure:"port"`
	server.Options `mapstructure:",squash"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DeviceConfig is the panel connection plus gateway-side polling.
type DeviceConfig struct {
	komfovent.Config `mapstructure:",squash"`
	// ProfilePath points at a profile YAML; empty selects the embedded C6 profile.
	ProfilePath  string        `mapstructure:"profile"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", "8080")
	v.SetDefault("http.read_header_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 30*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)

	v.SetDefault("db.path", "komfovent.db")

	v.SetDefault("log.level", logger.InfoLevel)
	v.SetDefault("log.format", logger.FormatConsole)

	v.SetDefault("device.host", "")
	v.SetDefault("device.port", komfovent.DefaultPort)
	v.SetDefault("device.username", "user")
	v.SetDefault("device.password", "")
	v.SetDefault("device.timeout", komfovent.DefaultTimeout)
	v.SetDefault("device.base_url", "")
	v.SetDefault("device.profile", "")
	v.SetDefault("device.poll_interval", service.DefaultPollInterval)

	v.SetDefault("discovery.subnet", "")
	v.SetDefault("discovery.port", komfovent.DefaultPort)
	v.SetDefault("discovery.concurrency", komfovent.DefaultDiscoveryConcurrency)
	v.SetDefault("discovery.timeout", komfovent.DefaultProbeTimeout)

	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("auth.allow_sign_up", false)
}

// Load reads path, or configs/config.yml when path is empty. A missing
// default file is not an error: defaults and the environment still apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs")
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings every command needs.
func (c *Config) Validate() error {
	if c.Device.PollInterval < service.MinPollInterval || c.Device.PollInterval > service.MaxPollInterval {
		return fmt.Errorf("device.poll_interval must be within %v..%v, got %v",
			service.MinPollInterval, service.MaxPollInterval, c.Device.PollInterval)
	}
	switch c.Log.Format {
	case logger.FormatConsole, logger.FormatJSON:
	default:
		return fmt.Errorf("log.format must be %q or %q, got %q", logger.FormatConsole, logger.FormatJSON, c.Log.Format)
	}
	if c.Device.Port <= 0 || c.Device.Port > 65535 {
		return fmt.Errorf("device.port out of range: %d", c.Device.Port)
	}
	return nil
}

// RequireDevice checks that a panel address is configured.
func (c *Config) RequireDevice() error {
	if strings.TrimSpace(c.Device.Host) == "" && strings.TrimSpace(c.Device.BaseURL) == "" {
		return errors.New("device.host is required (or KOMFOVENT_DEVICE_HOST)")
	}
	return nil
}

// RequireServe checks what the gateway needs on top of RequireDevice.
func (c *Config) RequireServe() error {
	if err := c.RequireDevice(); err != nil {
		return err
	}
	if c.Auth.SigningKey == "" {
		return errors.New("auth.signing_key is required (or KOMFOVENT_AUTH_SIGNING_KEY)")
	}
	return nil
}

// ClientConfig resolves the profile and returns the panel client settings.
func (c *Config) ClientConfig() (komfovent.Config, error) {
	cc := c.Device.Config
	if c.Device.ProfilePath != "" {
		p, err := komfovent.LoadProfileFile(c.Device.ProfilePath)
		if err != nil {
			return komfovent.Config{}, err
		}
		cc.Profile = p
	}
	return cc, nil
}
