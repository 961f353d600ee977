// Package config loads wavefield settings from defaults, an optional YAML
// file, WAVEFIELD_* environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. WAVEFIELD_LINES_COUNT.
const EnvPrefix = "WAVEFIELD"

// Config holds all settings.
type Config struct {
	Motion   MotionConfig   `mapstructure:"motion"`
	Lines    LinesConfig    `mapstructure:"lines"`
	Device   DeviceConfig   `mapstructure:"device"`
	Window   WindowConfig   `mapstructure:"window"`
	Headless HeadlessConfig `mapstructure:"headless"`
	Terminal TerminalConfig `mapstructure:"terminal"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Log      LogConfig      `mapstructure:"log"`
}

// MotionConfig carries the reduced-motion preference.
type MotionConfig struct {
	Reduced bool `mapstructure:"reduced"`
}

// LinesConfig configures the line set.
type LinesConfig struct {
	Count       int      `mapstructure:"count"` // 0 = device default
	Speed       float64  `mapstructure:"speed"`
	Interactive bool     `mapstructure:"interactive"`
	Palette     []string `mapstructure:"palette"` // "#rrggbb"
}

// DeviceConfig configures device classification.
type DeviceConfig struct {
	Agent      string `mapstructure:"agent"` // empty = runtime platform
	Breakpoint int    `mapstructure:"breakpoint"`
}

// WindowConfig configures the GPU window host.
type WindowConfig struct {
	Title     string   `mapstructure:"title"`
	Width     int      `mapstructure:"width"`
	Height    int      `mapstructure:"height"`
	Libraries []string `mapstructure:"libraries"` // probed newest first
}

// HeadlessConfig configures the software host.
type HeadlessConfig struct {
	Width      int    `mapstructure:"width"`
	Height     int    `mapstructure:"height"`
	Hz         int    `mapstructure:"hz"`
	Ticks      uint64 `mapstructure:"ticks"`
	Snapshot   string `mapstructure:"snapshot"`
	NoGraphics bool   `mapstructure:"no_graphics"`
}

// TerminalConfig configures the terminal host.
type TerminalConfig struct {
	Hz int `mapstructure:"hz"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"` // empty disables the endpoint
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// SetDefaults registers every key with its default so environment overrides
// resolve during Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("motion.reduced", false)
	v.SetDefault("lines.count", 0)
	v.SetDefault("lines.speed", 1.0)
	v.SetDefault("lines.interactive", true)
	v.SetDefault("lines.palette", []string{"#4f8cff", "#7a5cff", "#2ed1c5", "#a8b8ff"})
	v.SetDefault("device.agent", "")
	v.SetDefault("device.breakpoint", 768)
	v.SetDefault("window.title", "wavefield")
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.libraries", []string{"auto", "opengl"})
	v.SetDefault("headless.width", 960)
	v.SetDefault("headless.height", 540)
	v.SetDefault("headless.hz", 60)
	v.SetDefault("headless.ticks", 0)
	v.SetDefault("headless.snapshot", "")
	v.SetDefault("headless.no_graphics", false)
	v.SetDefault("terminal.hz", 30)
	v.SetDefault("metrics.addr", "")
	v.SetDefault("log.level", "info")
}

// New returns a viper instance with defaults, env binding and search paths.
// An explicit path replaces the search.
func New(path string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		return v
	}
	v.SetConfigName("wavefield")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "wavefield"))
	}
	return v
}

// Load reads the config file, if any, and decodes v. A missing file is not an
// error unless it was named explicitly.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return Decode(v)
}

// Decode unmarshals the current state of v.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Watch re-decodes v whenever its file changes and passes the result to fn.
// fn runs on the watcher goroutine. It returns false when no file is in use.
func Watch(v *viper.Viper, fn func(*Config, error)) bool {
	if v.ConfigFileUsed() == "" {
		return false
	}
	v.OnConfigChange(func(fsnotify.Event) {
		fn(Decode(v))
	})
	v.WatchConfig()
	return true
}
