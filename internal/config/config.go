// Package config loads application settings from a config file, the
// environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/hammamikhairi/airfryer/internal/domain"
	"github.com/hammamikhairi/airfryer/internal/logger"
)

const (
	// EnvPrefix is prepended to every environment override, e.g.
	// AIRFRYER_UNIT=C.
	EnvPrefix = "AIRFRYER"
	// FileName is the default config file, looked up in $HOME.
	FileName = ".airfryer"
)

// Config holds every tunable setting.
type Config struct {
	Unit                string        `mapstructure:"unit"`
	LogLevel            string        `mapstructure:"log_level"`
	LogFile             string        `mapstructure:"log_file"`
	StateDir            string        `mapstructure:"state_dir"`
	TickInterval        time.Duration `mapstructure:"tick_interval"`
	NotifyCooldown      time.Duration `mapstructure:"notify_cooldown"`
	MaxEscalation       int           `mapstructure:"max_escalation"`
	AlmostDoneThreshold time.Duration `mapstructure:"almost_done_threshold"`
	ReminderInterval    time.Duration `mapstructure:"reminder_interval"`
	Sound               bool          `mapstructure:"sound"`
	AlarmTone           string        `mapstructure:"alarm_tone"` // optional WAV file
	MetricsAddr         string        `mapstructure:"metrics_addr"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("unit", "F")
	v.SetDefault("log_level", "normal")
	v.SetDefault("log_file", ".airfryer-logs/airfryer.log")
	v.SetDefault("state_dir", ".airfryer-state")
	v.SetDefault("tick_interval", time.Second)
	v.SetDefault("notify_cooldown", 15*time.Second)
	v.SetDefault("max_escalation", 3)
	v.SetDefault("almost_done_threshold", time.Minute)
	v.SetDefault("reminder_interval", 5*time.Minute)
	v.SetDefault("sound", true)
	v.SetDefault("alarm_tone", "")
	v.SetDefault("metrics_addr", "")
}

// Load reads settings into a Config. cfgFile overrides the default
// $HOME/.airfryer.yaml lookup; a missing default file is not an error, a
// missing explicit one is.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigType("yaml")
		v.SetConfigName(FileName)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	decoderConfigOption := viper.DecoderConfigOption(func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			dc.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := v.Unmarshal(&cfg, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if _, err := domain.ParseUnit(c.Unit); err != nil {
		return fmt.Errorf("config unit: %w", err)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config log_level: %w", err)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("config tick_interval must be positive, got %s", c.TickInterval)
	}
	if c.NotifyCooldown < 0 || c.AlmostDoneThreshold < 0 || c.ReminderInterval < 0 {
		return errors.New("config durations must not be negative")
	}
	if c.MaxEscalation < 0 {
		return fmt.Errorf("config max_escalation must not be negative, got %d", c.MaxEscalation)
	}
	return nil
}

// TemperatureUnit returns the parsed default unit. Only valid after
// Validate has passed.
func (c *Config) TemperatureUnit() domain.TemperatureUnit {
	u, _ := domain.ParseUnit(c.Unit)
	return u
}

// Level returns the parsed log level.
func (c *Config) Level() logger.Level {
	l, _ := logger.ParseLevel(c.LogLevel)
	return l
}
