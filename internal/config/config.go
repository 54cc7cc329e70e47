package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/shapehunt/engine/internal/entity"
)

type Config struct {
	Session    SessionConfig    `toml:"session"`
	Movement   entity.Movement  `toml:"movement"`
	Director   DirectorConfig   `toml:"director"`
	Flashlight FlashlightConfig `toml:"flashlight"`
	Logging    LoggingConfig    `toml:"logging"`
	Data       DataConfig       `toml:"data"`
}

type SessionConfig struct {
	Width         float64       `toml:"width"`
	Height        float64       `toml:"height"`
	TickRate      time.Duration `toml:"tick_rate"`
	RunFor        time.Duration `toml:"run_for"` // 0 = until interrupted
	Seed          int64         `toml:"seed"`    // 0 = time based
	InitialShapes int           `toml:"initial_shapes"`
}

type DirectorConfig struct {
	Enabled       bool          `toml:"enabled"`
	MinGap        time.Duration `toml:"min_gap"`
	MaxGap        time.Duration `toml:"max_gap"`
	Cooldown      time.Duration `toml:"cooldown"`
	ToastDuration time.Duration `toml:"toast_duration"`
}

type FlashlightConfig struct {
	Max          float64 `toml:"max"`
	Intensity    float64 `toml:"intensity"`      // starting intensity
	FreezeAtFull bool    `toml:"freeze_at_full"` // hard-freeze every shape at full power
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type DataConfig struct {
	Events  string `toml:"events"`  // yaml event table
	Scripts string `toml:"scripts"` // lua scripts root
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaults()
}

func (c *Config) validate() error {
	if c.Session.Width <= 0 || c.Session.Height <= 0 {
		return fmt.Errorf("session viewport must be positive, got %vx%v", c.Session.Width, c.Session.Height)
	}
	if c.Session.TickRate <= 0 {
		return fmt.Errorf("session tick_rate must be positive")
	}
	if c.Movement.LerpStrength < 0 || c.Movement.LerpStrength > 1 {
		return fmt.Errorf("movement lerp_strength %v outside [0,1]", c.Movement.LerpStrength)
	}
	if c.Director.MaxGap < c.Director.MinGap {
		return fmt.Errorf("director max_gap %v below min_gap %v", c.Director.MaxGap, c.Director.MinGap)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Session: SessionConfig{
			Width:         800,
			Height:        600,
			TickRate:      16 * time.Millisecond,
			InitialShapes: 24,
		},
		Movement: entity.Movement{
			Enabled:       true,
			LerpStrength:  0.05,
			VelocityLimit: 2,
			SwitchRate:    60,
		},
		Director: DirectorConfig{
			Enabled:       true,
			MinGap:        8 * time.Second,
			MaxGap:        15 * time.Second,
			Cooldown:      6 * time.Second,
			ToastDuration: 1500 * time.Millisecond,
		},
		Flashlight: FlashlightConfig{
			Max:       100,
			Intensity: 0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Data: DataConfig{
			Events:  "data/yaml/events.yaml",
			Scripts: "scripts",
		},
	}
}
