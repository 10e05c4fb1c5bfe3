package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig is returned when a loaded config fails validation.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Display DisplayConfig `toml:"display"`
	Audio   AudioConfig   `toml:"audio"`
	Logging LoggingConfig `toml:"logging"`
	Game    GameConfig    `toml:"game"`
}

type ServerConfig struct {
	Host        string        `toml:"host"`
	Port        int           `toml:"port"`
	HostKeyPath string        `toml:"host_key_path"`
	IdleTimeout time.Duration `toml:"idle_timeout"` // zero disables
}

type DisplayConfig struct {
	TargetFPS     int           `toml:"target_fps"`
	MaxDelta      time.Duration `toml:"max_delta"`
	MaxTermWidth  int           `toml:"max_term_width"`
	MaxTermHeight int           `toml:"max_term_height"`
	WindowScale   float64       `toml:"window_scale"`
}

type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"` // master gain, 0.0-1.0
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "text", "json" or "logfmt"
	File   string `toml:"file"`
}

type GameConfig struct {
	Seed       uint64 `toml:"seed"`        // 0 picks a seed at startup
	TuningPath string `toml:"tuning_path"` // empty uses the built-in tuning
}

// Defaults returns the configuration used when no file is present.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        2222,
			HostKeyPath: ".ssh/id_ed25519",
			IdleTimeout: 5 * time.Minute,
		},
		Display: DisplayConfig{
			TargetFPS:     60,
			MaxDelta:      50 * time.Millisecond,
			MaxTermWidth:  160,
			MaxTermHeight: 60,
			WindowScale:   1,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.8,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a TOML file over Defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges that would otherwise break the frame loop.
func (c *Config) Validate() error {
	switch {
	case c.Display.TargetFPS <= 0:
		return fmt.Errorf("%w: display.target_fps must be positive", ErrInvalidConfig)
	case c.Display.MaxDelta <= 0:
		return fmt.Errorf("%w: display.max_delta must be positive", ErrInvalidConfig)
	case c.Display.WindowScale <= 0:
		return fmt.Errorf("%w: display.window_scale must be positive", ErrInvalidConfig)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio.volume must be within [0, 1]", ErrInvalidConfig)
	case c.Server.Port <= 0 || c.Server.Port > 65535:
		return fmt.Errorf("%w: server.port out of range", ErrInvalidConfig)
	}
	return nil
}

// FrameInterval is the wall-clock budget for one frame.
func (d DisplayConfig) FrameInterval() time.Duration {
	return time.Second / time.Duration(d.TargetFPS)
}

// Resolve loads everything a front-end needs: the TOML file at path (or
// $NOVA_CONFIG when path is empty), environment overrides, and the tuning
// file the config points at.
func Resolve(path string) (*Config, *Tuning, error) {
	if path == "" {
		path = GetEnv(EnvConfigPath, "")
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, nil, err
	}
	ApplyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	tuning, err := LoadTuning(cfg.Game.TuningPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, tuning, nil
}
