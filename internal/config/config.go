package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	DefaultFrameInterval = 50 * time.Millisecond
	DefaultFetchTimeout  = 30 * time.Second
	DefaultSeekStep      = 5.0
	DefaultVolumeStep    = 0.05

	minFrameInterval = 16 * time.Millisecond
	maxFrameInterval = time.Second
)

type Config struct {
	Icons    string `koanf:"icons"`     // "nerd", "unicode", or "none"
	LogLevel string `koanf:"log_level"` // "debug", "info", "warn", "error"

	FrameInterval time.Duration `koanf:"frame_interval"` // display refresh while playing
	FetchTimeout  time.Duration `koanf:"fetch_timeout"`  // HTTP source timeout

	SeekStep   float64 `koanf:"seek_step"`   // percent per seek key press
	VolumeStep float64 `koanf:"volume_step"` // gain change per volume key press

	RememberVolume bool `koanf:"remember_volume"` // restore volume/mute on start
	Autoplay       bool `koanf:"autoplay"`        // play as soon as the source is loaded
}

// Default returns the configuration used when no file sets a key.
func Default() *Config {
	return &Config{
		Icons:          "none",
		LogLevel:       "info",
		FrameInterval:  DefaultFrameInterval,
		FetchTimeout:   DefaultFetchTimeout,
		SeekStep:       DefaultSeekStep,
		VolumeStep:     DefaultVolumeStep,
		RememberVolume: true,
	}
}

// Load reads the config files in priority order (last wins). explicit, when
// non-empty, is loaded last and must exist.
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	if explicit != "" {
		path := expandPath(explicit)
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return cfg, nil
}

// Normalize replaces invalid values with defaults and clamps ranges.
func (c *Config) Normalize() {
	c.Icons = strings.ToLower(strings.TrimSpace(c.Icons))
	switch c.Icons {
	case "nerd", "unicode", "none":
	default:
		c.Icons = "none"
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		c.LogLevel = "info"
	}

	if c.FrameInterval <= 0 {
		c.FrameInterval = DefaultFrameInterval
	}
	c.FrameInterval = min(max(c.FrameInterval, minFrameInterval), maxFrameInterval)

	if c.FetchTimeout <= 0 {
		c.FetchTimeout = DefaultFetchTimeout
	}
	if c.SeekStep <= 0 || c.SeekStep > 100 {
		c.SeekStep = DefaultSeekStep
	}
	if c.VolumeStep <= 0 || c.VolumeStep > 1 {
		c.VolumeStep = DefaultVolumeStep
	}
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/wavelet/config.toml
		filepath.Join(xdg.ConfigHome, "wavelet", "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
